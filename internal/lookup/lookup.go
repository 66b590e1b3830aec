// Package lookup resolves free-text queries (ticker symbols or company
// names) to canonical symbols using the finance search endpoint.
package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"

	"tickerscrape/internal/fetcher"
	"tickerscrape/internal/ratelimit"
)

// UnknownExchangeError is raised in strict mode when the endpoint
// returns an exchange that has not been cataloged.
type UnknownExchangeError struct {
	Exchange Exchange
}

func (e *UnknownExchangeError) Error() string {
	return fmt.Sprintf("unknown exchange %q", string(e.Exchange))
}

// UnknownAssetTypeError is raised in strict mode when the endpoint
// returns an asset type that has not been cataloged.
type UnknownAssetTypeError struct {
	AssetType AssetType
}

func (e *UnknownAssetTypeError) Error() string {
	return fmt.Sprintf("unknown asset type %q", string(e.AssetType))
}

// Symbol is one candidate from the lookup endpoint.
type Symbol struct {
	Symbol    string
	Name      string
	Exchange  Exchange
	AssetType AssetType
}

// SymbolList holds the candidates for one query, in endpoint ranking
// order.
type SymbolList struct {
	Symbols []Symbol
}

// Len returns the number of candidates.
func (l SymbolList) Len() int { return len(l.Symbols) }

// First returns the endpoint's best match, or nil when empty. The
// ranking is the endpoint's own; it is not re-ranked locally.
func (l SymbolList) First() *Symbol {
	if len(l.Symbols) == 0 {
		return nil
	}
	s := l.Symbols[0]
	return &s
}

// Filter returns a new list keeping only candidates whose exchange is a
// member of exchanges and whose asset type equals asset.
func (l SymbolList) Filter(exchanges ExchangeGroup, asset AssetType) SymbolList {
	var kept []Symbol
	for _, s := range l.Symbols {
		if exchanges.Contains(s.Exchange) && s.AssetType == asset {
			kept = append(kept, s)
		}
	}
	return SymbolList{Symbols: kept}
}

// searchAssistResponse mirrors the lookup endpoint's JSON shape.
type searchAssistResponse struct {
	Items []struct {
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		ExchDisp string `json:"exchDisp"`
		TypeDisp string `json:"typeDisp"`
	} `json:"items"`
}

// Client queries the lookup endpoint. Strict mode rejects exchanges and
// asset types that are not cataloged; the default lenient mode passes
// them through so data still flows for venues not yet listed.
type Client struct {
	http   *resty.Client
	limits *ratelimit.Limiter
	strict bool
}

// NewClient creates a lookup client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, strict bool) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		http:   client,
		limits: ratelimit.GetLimiter(),
		strict: strict,
	}
}

// Search sends query to the lookup endpoint and returns the candidate
// list. In strict mode an uncataloged exchange or asset type fails the
// whole search.
func (c *Client) Search(ctx context.Context, query string) (SymbolList, error) {
	if err := c.limits.Wait(ctx, ratelimit.APILookup); err != nil {
		return SymbolList{}, err
	}

	var result searchAssistResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/_finance_doubledown/api/resource/searchassist;searchTerm=" + url.PathEscape(query))
	if err != nil {
		return SymbolList{}, fetcher.NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return SymbolList{}, fetcher.NewNotFoundError(query, resp.StatusCode())
	}

	list := SymbolList{Symbols: make([]Symbol, 0, len(result.Items))}

	for _, item := range result.Items {
		exchange := Exchange(item.ExchDisp)
		asset := NormalizeAssetType(item.TypeDisp)

		if c.strict {
			if !KnownExchange(exchange) {
				return SymbolList{}, &UnknownExchangeError{Exchange: exchange}
			}
			if !KnownAssetType(asset) {
				return SymbolList{}, &UnknownAssetTypeError{AssetType: asset}
			}
		}

		list.Symbols = append(list.Symbols, Symbol{
			Symbol:    strings.ToUpper(item.Symbol),
			Name:      item.Name,
			Exchange:  exchange,
			AssetType: asset,
		})
	}

	return list, nil
}

// First returns the endpoint's best match for query, or nil when the
// search comes back empty.
func (c *Client) First(ctx context.Context, query string) (*Symbol, error) {
	list, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return list.First(), nil
}

// Resolve adapts First to the orchestrator's resolver contract: the
// canonical uppercase symbol and whether the query resolved at all.
func (c *Client) Resolve(ctx context.Context, query string) (string, bool, error) {
	match, err := c.First(ctx, query)
	if err != nil {
		return "", false, err
	}
	if match == nil {
		return "", false, nil
	}
	return match.Symbol, true, nil
}
