package schema

import (
	"errors"
	"testing"

	"tickerscrape/internal/clean"
)

func TestMergeFirstWriterWins(t *testing.T) {
	header := map[string]string{"close": "119.25", "name": "Apple Inc."}
	table := map[string]string{"close": "118.00", "volume": "5,000"}

	merged := Merge(header, table)

	if merged["close"] != "119.25" {
		t.Errorf("close = %q, want header value 119.25", merged["close"])
	}
	if merged["volume"] != "5,000" {
		t.Errorf("volume = %q, want table value", merged["volume"])
	}
	if merged["name"] != "Apple Inc." {
		t.Errorf("name = %q", merged["name"])
	}
}

func TestAssembleFanOut(t *testing.T) {
	// One raw "bid" key feeds both a price and a size field.
	s := &Schema{
		Kind: "test",
		Fields: []Field{
			{Name: "bid_price", Source: "bid", Kind: Float, Clean: clean.FirstOfX},
			{Name: "bid_size", Source: "bid", Kind: Int, Clean: clean.SecondOfX},
		},
	}

	rec, err := s.Assemble(map[string]string{"bid": "112.25 x 1100"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if p := rec.FloatPtr("bid_price"); p == nil || *p != 112.25 {
		t.Errorf("bid_price = %v, want 112.25", p)
	}
	if n := rec.IntPtr("bid_size"); n == nil || *n != 1100 {
		t.Errorf("bid_size = %v, want 1100", n)
	}
}

func TestAssembleOptionalAbsent(t *testing.T) {
	s := &Schema{
		Kind: "test",
		Fields: []Field{
			{Name: "open", Kind: Float},
			{Name: "market_cap", Kind: Int},
		},
	}

	rec, err := s.Assemble(map[string]string{"open": "115.01"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if rec["market_cap"].IsMissing() != true {
		t.Error("absent optional field should be missing")
	}
	if p := rec.FloatPtr("open"); p == nil || *p != 115.01 {
		t.Errorf("open = %v", p)
	}
}

func TestAssembleMissingSentinel(t *testing.T) {
	s := &Schema{
		Kind:   "test",
		Fields: []Field{{Name: "pe_ratio_ttm", Kind: Float}},
	}

	rec, err := s.Assemble(map[string]string{"pe_ratio_ttm": "N/A"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !rec["pe_ratio_ttm"].IsMissing() {
		t.Error("N/A should assemble to missing, not zero")
	}
	if p := rec.FloatPtr("pe_ratio_ttm"); p != nil {
		t.Errorf("missing field yielded %v, want nil", *p)
	}
}

func TestAssembleRequiredAbsent(t *testing.T) {
	s := &Schema{
		Kind:   "test",
		Fields: []Field{{Name: "symbol", Kind: String, Clean: clean.Symbol, Required: true}},
	}

	_, err := s.Assemble(map[string]string{})
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("Assemble() = %v, want AssemblyError", err)
	}
	if asmErr.Field != "symbol" {
		t.Errorf("failed field = %q, want symbol", asmErr.Field)
	}
}

func TestAssembleMalformedOptionalBecomesAbsent(t *testing.T) {
	s := &Schema{
		Kind:   "test",
		Fields: []Field{{Name: "low", Source: "days_range", Kind: Float, Clean: clean.FirstOfDash}},
	}

	rec, err := s.Assemble(map[string]string{"days_range": "115.32"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !rec["low"].IsMissing() {
		t.Error("malformed optional field should become absent")
	}
}

func TestAssembleDashMissing(t *testing.T) {
	s := &Schema{
		Kind: "test",
		Fields: []Field{
			{Name: "volume", Kind: Int, DashMissing: true},
			{Name: "strike", Kind: Float},
		},
	}

	rec, err := s.Assemble(map[string]string{"volume": "-", "strike": "125.00"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !rec["volume"].IsMissing() {
		t.Error("dash cell should be missing for opted-in field")
	}
	if p := rec.FloatPtr("strike"); p == nil || *p != 125.0 {
		t.Errorf("strike = %v", p)
	}
}

func TestAssembleSuffixToFloat(t *testing.T) {
	s := &Schema{
		Kind:   "test",
		Fields: []Field{{Name: "market_cap", Kind: Int}},
	}

	rec, err := s.Assemble(map[string]string{"market_cap": "1.966T"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if n := rec.IntPtr("market_cap"); n == nil || *n != 1_966_000_000_000 {
		t.Errorf("market_cap = %v, want 1966000000000", n)
	}
}
