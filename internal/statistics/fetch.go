package statistics

import (
	"context"
	"fmt"

	"tickerscrape/internal/coordinator"
	"tickerscrape/internal/fetcher"
)

// Fetcher retrieves and parses key-statistics pages.
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

// GetOne fetches the key-statistics page for one identifier,
// optionally resolving free text to a canonical symbol first.
func (f *Fetcher) GetOne(ctx context.Context, identifier string, opts GetOptions) (*StatisticsPage, error) {
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

// Get fetches the key-statistics page for one canonical symbol.
func (f *Fetcher) Get(ctx context.Context, symbol string) (*StatisticsPage, error) {
	html, err := f.pages.Page(ctx, symbol, fmt.Sprintf("/quote/%s/key-statistics?p=%s", symbol, symbol))
	if err != nil {
		return nil, err
	}
	return Parse(symbol, html)
}

// GetMultiple runs a batch through the coordinator and collects the
// successful pages into a group.
func (f *Fetcher) GetMultiple(ctx context.Context, c *coordinator.Coordinator, identifiers []string) (*StatisticsPageGroup, error) {
	pages, err := coordinator.FetchAll(ctx, c, identifiers, f.Get)
	if err != nil {
		return nil, err
	}
	return &StatisticsPageGroup{Pages: pages}, nil
}
