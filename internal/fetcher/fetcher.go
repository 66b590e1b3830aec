package fetcher

import (
	"context"
	"errors"
	"time"

	"resty.dev/v3"

	"tickerscrape/internal/ratelimit"
)

// Client is the page transport used by the scrapers. It wraps a retrying
// HTTP client and the shared per-endpoint rate limiter; callers receive
// the raw body text and hand it to a page parser.
type Client struct {
	http   *resty.Client
	limits *ratelimit.Limiter
	api    ratelimit.API
}

// NewClient creates a page transport rooted at baseURL. An empty
// proxyURL disables proxying.
func NewClient(baseURL string, timeout time.Duration, proxyURL string) *Client {
	return &Client{
		http:   newHTTPClient(baseURL, timeout, proxyURL),
		limits: ratelimit.GetLimiter(),
		api:    ratelimit.APIQuotePage,
	}
}

// Page fetches path and returns the response body text. Rate-limit and
// server statuses that survive the transport's retries keep their own
// error types; any other non-OK status is a not-found error for symbol,
// and the caller's page-not-found policy decides whether that is fatal.
func (c *Client) Page(ctx context.Context, symbol, path string) (string, error) {
	if err := c.limits.Wait(ctx, c.api); err != nil {
		return "", err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", NewTimeoutError(err)
		}
		return "", NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return "", statusError(symbol, resp.StatusCode())
	}

	return resp.String(), nil
}

// statusError maps a non-OK response status to a typed error.
func statusError(symbol string, statusCode int) *FetchError {
	switch {
	case statusCode == 429:
		return NewRateLimitError(symbol, statusCode)
	case statusCode >= 500:
		return NewServerError(symbol, statusCode)
	default:
		return NewNotFoundError(symbol, statusCode)
	}
}
