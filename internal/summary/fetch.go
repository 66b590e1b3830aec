package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/coordinator"
	"tickerscrape/internal/fetcher"
	"tickerscrape/internal/htmltable"
	"tickerscrape/internal/quote"
	"tickerscrape/internal/schema"
)

// Parse builds a SummaryPage from the page HTML for symbol. Header
// fields win over detail-table fields for keys present in both.
func Parse(symbol, html string) (*SummaryPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fetcher.NewValidationError(symbol, fmt.Sprintf("unparseable page: %v", err))
	}

	q, err := quote.Parse(doc)
	if err != nil {
		return nil, err
	}
	// Unknown symbols come back as a 200 page without the quote
	// header, so a missing header is a not-found, not a parse bug.
	if q == nil {
		return nil, fetcher.NewNotFoundError(symbol, 0)
	}

	headerRaw := quote.ParseHeader(doc)
	tableRaw := htmltable.TwoColumn(doc.Find("div#quote-summary"))
	// A header without the detail tables is another shape of shell
	// page; both sections must be present.
	if len(tableRaw) == 0 {
		return nil, fetcher.NewNotFoundError(symbol, 0)
	}

	raw := schema.Merge(
		map[string]string{"symbol": symbol},
		headerRaw,
		tableRaw,
	)

	return fromRaw(q, raw)
}

// Fetcher retrieves and parses summary pages.
type Fetcher struct {
	pages *fetcher.Client
}

// NewFetcher wraps the shared page transport.
func NewFetcher(pages *fetcher.Client) *Fetcher {
	return &Fetcher{pages: pages}
}

// GetOptions adjust a single-page request.
type GetOptions struct {
	// Resolver, when set, resolves the identifier to a canonical
	// symbol before fetching.
	Resolver coordinator.Resolver

	// NotFoundOK turns a missing page into a nil result instead of
	// an error.
	NotFoundOK bool
}

// GetOne fetches the summary page for one identifier, optionally
// resolving free text to a canonical symbol first.
func (f *Fetcher) GetOne(ctx context.Context, identifier string, opts GetOptions) (*SummaryPage, error) {
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

	page, err := f.Get(ctx, symbol)
	if err != nil {
		if opts.NotFoundOK && fetcher.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return page, nil
}

// Get fetches the summary page for one canonical symbol.
func (f *Fetcher) Get(ctx context.Context, symbol string) (*SummaryPage, error) {
	html, err := f.pages.Page(ctx, symbol, fmt.Sprintf("/quote/%s?p=%s", symbol, symbol))
	if err != nil {
		return nil, err
	}
	return Parse(symbol, html)
}

// GetMultiple runs a batch through the coordinator and collects the
// successful pages into a group.
func (f *Fetcher) GetMultiple(ctx context.Context, c *coordinator.Coordinator, identifiers []string) (*SummaryPageGroup, error) {
	pages, err := coordinator.FetchAll(ctx, c, identifiers, f.Get)
	if err != nil {
		return nil, err
	}
	return &SummaryPageGroup{Pages: pages}, nil
}
