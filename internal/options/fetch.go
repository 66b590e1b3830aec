package options

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/coordinator"
	"tickerscrape/internal/fetcher"
)

// ChainOptions narrow a chain request.
type ChainOptions struct {
	// AfterDays keeps only expirations at least this many days out.
	// Zero disables the bound.
	AfterDays int

	// BeforeDays keeps only expirations within this many days. Zero
	// disables the bound.
	BeforeDays int

	// FirstChain stops after the first expiration that yields a chain.
	FirstChain bool
}

// GetOptions adjust a single-symbol chain request.
type GetOptions struct {
	// Resolver, when set, resolves the identifier to a canonical
	// symbol before fetching.
	Resolver coordinator.Resolver

	// NotFoundOK turns a missing page into a nil result instead of
	// an error.
	NotFoundOK bool
}

// Fetcher retrieves and parses options pages.
type Fetcher struct {
	pages *fetcher.Client
}

// NewFetcher wraps the shared page transport.
func NewFetcher(pages *fetcher.Client) *Fetcher {
	return &Fetcher{pages: pages}
}

func document(symbol, html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fetcher.NewValidationError(symbol, "unparseable page")
	}
	return doc, nil
}

// GetExpirations fetches the expiration dates offered for symbol.
func (f *Fetcher) GetExpirations(ctx context.Context, symbol string) (*ContractExpirationList, error) {
	html, err := f.pages.Page(ctx, symbol, fmt.Sprintf("/quote/%s/options?p=%s", symbol, symbol))
	if err != nil {
		return nil, err
	}

	doc, err := document(symbol, html)
	if err != nil {
		return nil, err
	}

	list, err := ParseExpirations(symbol, doc)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fetcher.NewNotFoundError(symbol, 0)
	}
	return list, nil
}

// GetChains fetches the option chains for symbol, one page per
// expiration surviving the day filters. Expirations whose chain page
// has gone missing are skipped; the whole request is not found only
// when no expiration yields a chain.
func (f *Fetcher) GetChains(ctx context.Context, symbol string, opts ChainOptions) (*MultipleOptionChains, error) {
	expirations, err := f.GetExpirations(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if opts.AfterDays != 0 || opts.BeforeDays != 0 {
		expirations.FilterBetweenDays(opts.AfterDays, opts.BeforeDays)
	}

	var chains []OptionsChain

	for _, exp := range expirations.Expirations {
		path := fmt.Sprintf("/quote/%s/options?date=%s&p=%s", exp.Symbol, exp.Timestamp, exp.Symbol)

		html, err := f.pages.Page(ctx, exp.Symbol, path)
		if err != nil {
			if fetcher.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		doc, err := document(exp.Symbol, html)
		if err != nil {
			return nil, err
		}

		chain, err := ParseChain(exp, doc)
		if err != nil {
			return nil, err
		}
		if chain == nil {
			continue
		}

		chains = append(chains, *chain)
		if opts.FirstChain {
			break
		}
	}

	if len(chains) == 0 {
		return nil, fetcher.NewNotFoundError(symbol, 0)
	}

	return &MultipleOptionChains{Chains: chains, Expirations: *expirations}, nil
}

// GetOne fetches the chains for one identifier, optionally resolving
// free text to a canonical symbol first.
func (f *Fetcher) GetOne(ctx context.Context, identifier string, chain ChainOptions, opts GetOptions) (*MultipleOptionChains, error) {
	symbol := identifier
	if opts.Resolver != nil {
		resolved, ok, err := opts.Resolver.Resolve(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if ok {
			symbol = resolved
		}
	}

	chains, err := f.GetChains(ctx, symbol, chain)
	if err != nil {
		if opts.NotFoundOK && fetcher.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return chains, nil
}

// GetMultiple fetches chains for a batch of identifiers and
// concatenates the per-symbol results into one group.
func (f *Fetcher) GetMultiple(ctx context.Context, c *coordinator.Coordinator, identifiers []string, opts ChainOptions) (*MultipleOptionChains, error) {
	groups, err := coordinator.FetchAll(ctx, c, identifiers, func(ctx context.Context, symbol string) (*MultipleOptionChains, error) {
		return f.GetChains(ctx, symbol, opts)
	})
	if err != nil {
		return nil, err
	}

	combined := &MultipleOptionChains{}
	for _, group := range groups {
		combined = combined.Concat(group)
	}
	return combined, nil
}
