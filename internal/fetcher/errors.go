package fetcher

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred during a fetch operation
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit indicates the request was rejected due to rate limiting (HTTP 429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeNotFound indicates the page for a symbol does not exist.
	// Client-error statuses other than 429 are treated as not-found
	// for policy purposes.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates the page was received but its data could not be parsed
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeTimeout indicates the request timed out
	ErrorTypeTimeout ErrorType = "timeout"
)

// FetchError represents a structured error from a fetch operation
type FetchError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	Symbol     string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeNetwork,
		Retryable: true,
		Message:   "network request failed",
		Cause:     cause,
	}
}

// NewRateLimitError creates a rate-limit error for a request the
// remote rejected with 429
func NewRateLimitError(symbol string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeRateLimit,
		Retryable:  true,
		StatusCode: statusCode,
		Symbol:     symbol,
		Message:    "request rejected by remote rate limiting",
	}
}

// NewServerError creates a server error for a 5xx response
func NewServerError(symbol string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeServer,
		Retryable:  true,
		StatusCode: statusCode,
		Symbol:     symbol,
		Message:    "server failed to produce the page",
	}
}

// NewNotFoundError creates a not-found error for a symbol's page
func NewNotFoundError(symbol string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeNotFound,
		Retryable:  false,
		StatusCode: statusCode,
		Symbol:     symbol,
		Message:    fmt.Sprintf("%s page not found", symbol),
	}
}

// NewValidationError creates a validation error for a page whose
// required sections could not be parsed
func NewValidationError(symbol, message string) *FetchError {
	return &FetchError{
		Type:      ErrorTypeValidation,
		Retryable: false,
		Symbol:    symbol,
		Message:   message,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeTimeout,
		Retryable: true,
		Message:   "request timed out",
		Cause:     cause,
	}
}

// IsNotFound reports whether err is a not-found fetch error. Callers use
// this to apply the page-not-found-ok policy.
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Type == ErrorTypeNotFound
}
