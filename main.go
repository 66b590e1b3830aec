package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tickerscrape/internal/config"
	"tickerscrape/internal/coordinator"
	"tickerscrape/internal/fetcher"
	"tickerscrape/internal/lookup"
	"tickerscrape/internal/summary"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Shared page transport and symbol lookup client
	pages := fetcher.NewClient(cfg.QuoteBaseURL, cfg.Timeout(), cfg.ProxyURL)
	search := lookup.NewClient(cfg.LookupBaseURL, cfg.Timeout(), cfg.StrictLookup)

	coord := coordinator.New(search, coordinator.Options{
		ResolveFirst:   cfg.ResolveSymbols,
		PageNotFoundOK: cfg.PageNotFoundOK,
		Workers:        cfg.Workers,
		Progress: func(symbol string) {
			fmt.Printf("  done: %s\n", symbol)
		},
	})

	summaries := summary.NewFetcher(pages)

	// Add timeout to prevent hanging indefinitely
	fetchCtx, fetchCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer fetchCancel()

	fmt.Printf("Fetching summary pages for %d symbols...\n", len(cfg.Symbols))
	fmt.Println("================================================")

	group, err := summaries.GetMultiple(fetchCtx, coord, cfg.Symbols)
	if err != nil {
		log.Fatalf("Batch fetch failed: %v", err)
	}

	group.Sort()

	fmt.Println("================================================")
	for _, row := range group.Table() {
		fmt.Println(formatRow(row))
	}
	fmt.Println("================================================")
	fmt.Printf("Fetched %d of %d symbols\n", group.Len(), len(cfg.Symbols))
}

// formatRow pads table cells into fixed-width columns.
func formatRow(row []string) string {
	widths := []int{8, 28, 10, 10, 10, 14, 16}

	var b strings.Builder
	for i, cell := range row {
		width := 10
		if i < len(widths) {
			width = widths[i]
		}
		fmt.Fprintf(&b, "%-*s ", width, cell)
	}
	return strings.TrimRight(b.String(), " ")
}
