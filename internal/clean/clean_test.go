package clean

import (
	"errors"
	"testing"
	"time"
)

func TestIsMissing(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"112.28", false},
		{"112.25 x 1100", false},
		{"112.78 - 115.32", false},
		{"53.15 - 137.98", false},
		{"137,672,403", false},
		{"1.966T", false},
		{"Oct 28, 2020 - Nov 02, 2020", false},
		{"0.82 (0.76%)", false},
		{"Aug 07, 2020", false},
		{"  2.4%", false},
		{"N/A", true},
		{"N/A (N/A)", true},
		{"0.75 (N/A)", true},
		{"N/A x 2200", true},
		{"112.23 - N/A", true},
		{"undefined", true},
		{"undefined - undefined", true},
		{"2.30 - undefined", true},
		{"+-34.23%", true},
		{"-+7.43%", true},
		{"", true},
		{" ", true},
		{"-", false}, // lone dash is only missing for opt-in call sites
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsMissing(tt.value); got != tt.want {
				t.Errorf("IsMissing(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsMissingOrDash(t *testing.T) {
	if !IsMissingOrDash("-") {
		t.Error("IsMissingOrDash(\"-\") = false, want true")
	}
	if IsMissingOrDash("112.78 - 115.32") {
		t.Error("IsMissingOrDash treated a range as missing")
	}
	if !IsMissingOrDash("N/A") {
		t.Error("IsMissingOrDash(\"N/A\") = false, want true")
	}
}

func TestRemoveComma(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"112.28", "112.28"},
		{"137,672,403", "137672403"},
		{"1.966T", "1.966T"},
		{"Oct 28, 2020 - Nov 02, 2020", "Oct 28 2020 - Nov 02 2020"},
		{" 119.25 ", "119.25"},
	}

	for _, tt := range tests {
		if got := RemoveComma(tt.value); got != tt.want {
			t.Errorf("RemoveComma(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRemoveBracketsAndPercentSign(t *testing.T) {
	if got := RemoveBrackets("+19.60 (+1.36%)"); got != "+19.60 +1.36%" {
		t.Errorf("RemoveBrackets() = %q", got)
	}
	if got := RemovePercentSign("+1.36%"); got != "+1.36" {
		t.Errorf("RemovePercentSign() = %q", got)
	}
	if got := RemovePercentSign(RemoveBrackets("+19.60 (+1.36%)")); got != "+19.60 +1.36" {
		t.Errorf("brackets+percent = %q", got)
	}
}

func TestLargeNumber(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"1.966T", 1_966_000_000_000},
		{"1.28B", 1_280_000_000},
		{"34.07M", 34_070_000},
		{"3.30K", 3_300},
		{"2.5b", 2_500_000_000},
		{"225.0M", 225_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := LargeNumber(tt.value)
			if err != nil {
				t.Fatalf("LargeNumber(%q) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("LargeNumber(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestCommon(t *testing.T) {
	v, err := Common("5,000")
	if err != nil {
		t.Fatalf("Common() error: %v", err)
	}
	if s, ok := v.Str(); !ok || s != "5000" {
		t.Errorf("Common(\"5,000\") = %v, want string \"5000\"", v)
	}

	v, err = Common("2.5M")
	if err != nil {
		t.Fatalf("Common() error: %v", err)
	}
	if n, ok := v.Int(); !ok || n != 2_500_000 {
		t.Errorf("Common(\"2.5M\") = %v, want int 2500000", v)
	}

	v, err = Common("N/A")
	if err != nil {
		t.Fatalf("Common() error: %v", err)
	}
	if !v.IsMissing() {
		t.Errorf("Common(\"N/A\") = %v, want missing", v)
	}
}

func TestCommonIdempotent(t *testing.T) {
	// An already-clean numeric string passes through unchanged.
	first, err := Common("119.25")
	if err != nil {
		t.Fatalf("Common() error: %v", err)
	}
	s, _ := first.Str()
	second, err := Common(s)
	if err != nil {
		t.Fatalf("Common() error: %v", err)
	}
	if second != first {
		t.Errorf("Common not idempotent: %v then %v", first, second)
	}
}

func TestSplitByX(t *testing.T) {
	v, err := FirstOfX("112.25 x 1100")
	if err != nil {
		t.Fatalf("FirstOfX() error: %v", err)
	}
	if s, _ := v.Str(); s != "112.25" {
		t.Errorf("FirstOfX = %q, want 112.25", s)
	}

	v, err = SecondOfX("112.25 x 1100")
	if err != nil {
		t.Fatalf("SecondOfX() error: %v", err)
	}
	if s, _ := v.Str(); s != "1100" {
		t.Errorf("SecondOfX = %q, want 1100", s)
	}
}

func TestSplitByDash(t *testing.T) {
	v, err := FirstOfDash("112.78 - 115.32")
	if err != nil {
		t.Fatalf("FirstOfDash() error: %v", err)
	}
	if s, _ := v.Str(); s != "112.78" {
		t.Errorf("FirstOfDash = %q, want 112.78", s)
	}

	v, err = SecondOfDash("112.78 - 115.32")
	if err != nil {
		t.Fatalf("SecondOfDash() error: %v", err)
	}
	if s, _ := v.Str(); s != "115.32" {
		t.Errorf("SecondOfDash = %q, want 115.32", s)
	}
}

func TestSplitBySpace(t *testing.T) {
	v, err := FirstOfSpace("0.82 (0.73%)")
	if err != nil {
		t.Fatalf("FirstOfSpace() error: %v", err)
	}
	if s, _ := v.Str(); s != "0.82" {
		t.Errorf("FirstOfSpace = %q, want 0.82", s)
	}

	v, err = SecondOfSpace("0.82 (0.73%)")
	if err != nil {
		t.Fatalf("SecondOfSpace() error: %v", err)
	}
	if s, _ := v.Str(); s != "0.73" {
		t.Errorf("SecondOfSpace = %q, want 0.73", s)
	}
}

func TestSplitMalformed(t *testing.T) {
	// A token with zero or more than one delimiter is a hard failure,
	// not a silent first-match.
	var malformed *MalformedTokenError

	_, err := FirstOfX("112.25")
	if !errors.As(err, &malformed) {
		t.Errorf("FirstOfX without delimiter: got %v, want MalformedTokenError", err)
	}

	_, err = SecondOfDash("1 - 2 - 3")
	if !errors.As(err, &malformed) {
		t.Errorf("SecondOfDash with two delimiters: got %v, want MalformedTokenError", err)
	}
}

func TestDateValue(t *testing.T) {
	v, err := DateValue("Oct 28, 2020 - Nov 02, 2020")
	if err != nil {
		t.Fatalf("DateValue() error: %v", err)
	}
	d, ok := v.Date()
	if !ok {
		t.Fatalf("DateValue() = %v, want date", v)
	}
	want := time.Date(2020, time.October, 28, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("DateValue range = %v, want first date %v", d, want)
	}

	v, err = DateValue("Aug 07, 2020")
	if err != nil {
		t.Fatalf("DateValue() error: %v", err)
	}
	d, _ = v.Date()
	if d.Month() != time.August || d.Day() != 7 || d.Year() != 2020 {
		t.Errorf("DateValue single = %v", d)
	}

	v, err = DateValue("N/A")
	if err != nil || !v.IsMissing() {
		t.Errorf("DateValue(\"N/A\") = %v, %v, want missing", v, err)
	}
}

func TestSymbolAndQuoteName(t *testing.T) {
	v, _ := Symbol("aapl")
	if s, _ := v.Str(); s != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", s)
	}

	v, _ = QuoteName("Apple Inc. (AAPL)")
	if s, _ := v.Str(); s != "Apple Inc." {
		t.Errorf("QuoteName = %q, want Apple Inc.", s)
	}
}
