package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the ticker scraping application.
type Config struct {
	// Base URLs for the scraped site (configurable for testing)
	QuoteBaseURL  string `mapstructure:"quote_base_url"`
	LookupBaseURL string `mapstructure:"lookup_base_url"`

	// Optional outbound proxy
	ProxyURL string `mapstructure:"proxy_url"`

	// Request timeout in seconds
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// Batch behavior
	Workers        int  `mapstructure:"workers"`
	ResolveSymbols bool `mapstructure:"resolve_symbols"`
	PageNotFoundOK bool `mapstructure:"page_not_found_ok"`

	// StrictLookup rejects lookup results from uncataloged exchanges
	// and asset types
	StrictLookup bool `mapstructure:"strict_lookup"`

	// Symbols to fetch
	Symbols []string `mapstructure:"symbols"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - SYMBOLS (comma separated, e.g. "AAPL,TSLA")
//   - QUOTE_BASE_URL (optional, defaults to production)
//   - LOOKUP_BASE_URL (optional, defaults to production)
//   - PROXY_URL (optional)
//   - TIMEOUT_SECONDS (optional, defaults to 30)
//   - WORKERS (optional, defaults to 5)
//   - RESOLVE_SYMBOLS (optional, defaults to true)
//   - PAGE_NOT_FOUND_OK (optional, defaults to true)
//   - STRICT_LOOKUP (optional, defaults to false)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("quote_base_url", "https://finance.yahoo.com")
	v.SetDefault("lookup_base_url", "https://finance.yahoo.com")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("workers", 5)
	v.SetDefault("resolve_symbols", true)
	v.SetDefault("page_not_found_ok", true)
	v.SetDefault("strict_lookup", false)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.tickerscrape")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("symbols", "SYMBOLS")
	v.BindEnv("quote_base_url", "QUOTE_BASE_URL")
	v.BindEnv("lookup_base_url", "LOOKUP_BASE_URL")
	v.BindEnv("proxy_url", "PROXY_URL")
	v.BindEnv("timeout_seconds", "TIMEOUT_SECONDS")
	v.BindEnv("workers", "WORKERS")
	v.BindEnv("resolve_symbols", "RESOLVE_SYMBOLS")
	v.BindEnv("page_not_found_ok", "PAGE_NOT_FOUND_OK")
	v.BindEnv("strict_lookup", "STRICT_LOOKUP")

	// Unmarshal config into struct
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The SYMBOLS env var arrives as one comma-separated string
	if len(config.Symbols) == 1 && strings.Contains(config.Symbols[0], ",") {
		config.Symbols = strings.Split(config.Symbols[0], ",")
	}
	for i, symbol := range config.Symbols {
		config.Symbols[i] = strings.TrimSpace(symbol)
	}

	// Validate required fields
	var missing []string
	if len(config.Symbols) == 0 {
		missing = append(missing, "SYMBOLS")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if config.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", config.Workers)
	}

	return config, nil
}
