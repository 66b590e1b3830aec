// Package coordinator drives two-phase batch retrieval: an optional
// resolve phase that maps free-text queries to canonical symbols, then
// a fetch phase that retrieves and parses one page per symbol. Both
// phases fan out over a bounded worker pool; one item's failure never
// cancels its siblings.
package coordinator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"tickerscrape/internal/fetcher"
)

// Resolver resolves a free-text query to a canonical symbol. ok is
// false when the query matched nothing.
type Resolver interface {
	Resolve(ctx context.Context, query string) (symbol string, ok bool, err error)
}

// FetchFunc fetches and parses the page for one canonical symbol.
type FetchFunc[T any] func(ctx context.Context, symbol string) (T, error)

// Options control one batch run.
type Options struct {
	// ResolveFirst runs the resolve phase before fetching. Queries
	// that fail to resolve are dropped silently.
	ResolveFirst bool

	// PageNotFoundOK converts a not-found fetch into an absent result
	// for that item instead of a batch failure.
	PageNotFoundOK bool

	// Workers bounds fetch-phase concurrency. Values below 1 mean
	// sequential execution.
	Workers int

	// ResolveWorkers bounds resolve-phase concurrency. Defaults to
	// Workers when zero.
	ResolveWorkers int

	// Progress, when set, is called once per completed item in each
	// phase, independent of the item's outcome.
	Progress func(symbol string)
}

// Coordinator runs batches against a shared resolver.
type Coordinator struct {
	resolver Resolver
	opts     Options
}

// New creates a Coordinator. The resolver may be nil when ResolveFirst
// is never requested.
func New(resolver Resolver, opts Options) *Coordinator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ResolveWorkers < 1 {
		opts.ResolveWorkers = opts.Workers
	}
	return &Coordinator{resolver: resolver, opts: opts}
}

// resolveAll maps queries to deduplicated canonical symbols. Failed or
// empty resolutions are dropped; duplicate canonical symbols from
// different spellings collapse to one entry.
func (c *Coordinator) resolveAll(ctx context.Context, queries []string) []string {
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
	)

	var g errgroup.Group
	g.SetLimit(c.opts.ResolveWorkers)

	for _, query := range queries {
		query := query
		g.Go(func() error {
			symbol, ok, err := c.resolver.Resolve(ctx, query)

			if c.opts.Progress != nil {
				c.opts.Progress(query)
			}
			if err != nil || !ok {
				return nil
			}

			mu.Lock()
			seen[symbol] = true
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	symbols := make([]string, 0, len(seen))
	for symbol := range seen {
		symbols = append(symbols, symbol)
	}
	return symbols
}

// dedupe removes duplicate identifiers, keeping first occurrence order.
func dedupe(identifiers []string) []string {
	seen := make(map[string]bool, len(identifiers))
	out := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// FetchAll runs a batch over identifiers and returns the successful
// results. With concurrency the results arrive in completion order;
// sequentially (Workers == 1) they keep input order. Result membership
// is identical either way.
//
// A not-found item is dropped when PageNotFoundOK is set; otherwise the
// first failure is returned after every in-flight item has finished.
// Failures never cancel sibling fetches.
func FetchAll[T any](ctx context.Context, c *Coordinator, identifiers []string, fetch FetchFunc[T]) ([]T, error) {
	symbols := dedupe(identifiers)
	if c.opts.ResolveFirst {
		symbols = c.resolveAll(ctx, symbols)
	}

	var (
		mu      sync.Mutex
		results = make([]T, 0, len(symbols))
	)

	var g errgroup.Group
	g.SetLimit(c.opts.Workers)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			result, err := fetch(ctx, symbol)

			if c.opts.Progress != nil {
				c.opts.Progress(symbol)
			}
			if err != nil {
				if c.opts.PageNotFoundOK && fetcher.IsNotFound(err) {
					return nil
				}
				return err
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
