package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
)

// MockResolver is a mock symbol resolver for testing
type MockResolver struct {
	ResolveFunc func(ctx context.Context, query string) (string, bool, error)
	Mapping     map[string]string
}

// Resolve implements the coordinator Resolver interface
func (m *MockResolver) Resolve(ctx context.Context, query string) (string, bool, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, query)
	}
	symbol, ok := m.Mapping[strings.ToLower(query)]
	return symbol, ok, nil
}

// NewMockResolver creates a resolver backed by a lowercase query to
// canonical symbol mapping. Queries absent from the mapping do not
// resolve.
func NewMockResolver(mapping map[string]string) *MockResolver {
	lowered := make(map[string]string, len(mapping))
	for query, symbol := range mapping {
		lowered[strings.ToLower(query)] = symbol
	}
	return &MockResolver{Mapping: lowered}
}

// NewPageServer creates a test server that serves the first page whose
// key is a substring of the request URL, or 404 when none matches.
func NewPageServer(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.String()
		for key, body := range pages {
			if strings.Contains(url, key) {
				w.Write([]byte(body))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}
