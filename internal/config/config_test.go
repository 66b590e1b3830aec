package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	// Set up environment variables
	envVars := map[string]string{
		"SYMBOLS":         "AAPL, TSLA,AMD",
		"QUOTE_BASE_URL":  "https://test.quotes.example",
		"LOOKUP_BASE_URL": "https://test.lookup.example",
		"PROXY_URL":       "http://proxy.example:8080",
		"TIMEOUT_SECONDS": "10",
		"WORKERS":         "8",
	}

	for key, value := range envVars {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"QuoteBaseURL", cfg.QuoteBaseURL, "https://test.quotes.example"},
		{"LookupBaseURL", cfg.LookupBaseURL, "https://test.lookup.example"},
		{"ProxyURL", cfg.ProxyURL, "http://proxy.example:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.TimeoutSeconds)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}

	// Comma-separated SYMBOLS splits and trims
	want := []string{"AAPL", "TSLA", "AMD"}
	if !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	os.Setenv("SYMBOLS", "AAPL")
	defer os.Unsetenv("SYMBOLS")

	optionalVars := []string{
		"QUOTE_BASE_URL",
		"LOOKUP_BASE_URL",
		"PROXY_URL",
		"TIMEOUT_SECONDS",
		"WORKERS",
		"RESOLVE_SYMBOLS",
		"PAGE_NOT_FOUND_OK",
		"STRICT_LOOKUP",
	}
	for _, key := range optionalVars {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.QuoteBaseURL != "https://finance.yahoo.com" {
		t.Errorf("QuoteBaseURL = %q, want production default", cfg.QuoteBaseURL)
	}
	if cfg.LookupBaseURL != "https://finance.yahoo.com" {
		t.Errorf("LookupBaseURL = %q, want production default", cfg.LookupBaseURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want 5", cfg.Workers)
	}
	if !cfg.ResolveSymbols {
		t.Error("ResolveSymbols should default to true")
	}
	if !cfg.PageNotFoundOK {
		t.Error("PageNotFoundOK should default to true")
	}
	if cfg.StrictLookup {
		t.Error("StrictLookup should default to false")
	}
}

func TestLoad_MissingSymbols(t *testing.T) {
	os.Unsetenv("SYMBOLS")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "SYMBOLS") {
		t.Errorf("Load() error = %q, want error containing SYMBOLS", err.Error())
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	os.Setenv("SYMBOLS", "AAPL")
	os.Setenv("WORKERS", "-1")
	defer os.Unsetenv("SYMBOLS")
	defer os.Unsetenv("WORKERS")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "workers") {
		t.Errorf("Load() error = %q, want error about workers", err.Error())
	}
}
