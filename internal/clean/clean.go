// Package clean normalizes raw text tokens scraped from finance pages
// into typed values. Every normalizer checks for missing-data sentinels
// first; absence is reported as a first-class Value, never as zero.
package clean

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Func is the signature shared by all value normalizers.
type Func func(string) (Value, error)

// MalformedTokenError indicates a token that was expected to contain a
// single delimiter but did not.
type MalformedTokenError struct {
	Token string
	Delim string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %q: expected exactly one %q delimiter", e.Token, e.Delim)
}

// numberSuffixes maps magnitude suffixes to multipliers. Order matters:
// suffixes are matched T, B, M, K.
var numberSuffixes = []struct {
	suffix     string
	multiplier float64
}{
	{"T", 1e12},
	{"B", 1e9},
	{"M", 1e6},
	{"K", 1e3},
}

// missingSubstrings flag a value as absent when contained anywhere in
// the token. "+-" and "-+" are sign collisions seen on change fields.
var missingSubstrings = []string{"N/A", "undefined", "+-", "-+"}

// IsMissing reports whether value is one of the missing-data sentinels.
// A lone "-" is not missing here; see IsMissingOrDash for the option
// table variant. Range strings like "112.78 - 115.32" are not missing.
func IsMissing(value string) bool {
	for _, missing := range missingSubstrings {
		if strings.Contains(value, missing) {
			return true
		}
	}
	return strings.TrimSpace(value) == ""
}

// IsMissingOrDash additionally treats a lone "-" as missing. Option
// contract tables use a bare dash for empty cells.
func IsMissingOrDash(value string) bool {
	return value == "-" || IsMissing(value)
}

// RemoveComma strips commas and surrounding whitespace.
func RemoveComma(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
}

// RemoveBrackets strips parentheses and surrounding whitespace.
func RemoveBrackets(value string) string {
	value = strings.ReplaceAll(value, "(", "")
	value = strings.ReplaceAll(value, ")", "")
	return strings.TrimSpace(value)
}

// RemovePercentSign strips percent signs and surrounding whitespace.
func RemovePercentSign(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
}

// HasNumberSuffix reports whether value carries a T, B, M or K
// magnitude suffix.
func HasNumberSuffix(value string) bool {
	upper := strings.ToUpper(value)
	for _, s := range numberSuffixes {
		if strings.Contains(upper, s.suffix) {
			return true
		}
	}
	return false
}

// LargeNumber expands a suffixed number such as "2.5B" into the integer
// 2_500_000_000, rounding to the nearest whole number.
func LargeNumber(value string) (int64, error) {
	upper := strings.ToUpper(value)
	for _, s := range numberSuffixes {
		if strings.Contains(upper, s.suffix) {
			trimmed := strings.ReplaceAll(upper, s.suffix, "")
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid suffixed number %q: %w", value, err)
			}
			return int64(math.Round(n * s.multiplier)), nil
		}
	}
	return 0, fmt.Errorf("no magnitude suffix in %q", value)
}

// commonValue removes commas and expands a magnitude suffix when
// present. Values without a suffix stay strings; the schema decides the
// final type.
func commonValue(value string) (Value, error) {
	value = RemoveComma(value)
	if HasNumberSuffix(value) {
		n, err := LargeNumber(value)
		if err != nil {
			return Missing(), err
		}
		return Int(n), nil
	}
	return Str(value), nil
}

// Common is the default normalizer for numeric fields: missing check,
// comma removal, magnitude suffix expansion.
func Common(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	return commonValue(value)
}

// Percentage normalizes a single percentage value such as "-3.4%".
func Percentage(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	return Str(RemoveComma(RemovePercentSign(value))), nil
}

// dateLayouts are tried in order when parsing scraped dates.
var dateLayouts = []string{
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2006/01/02",
	"1/2/2006",
	"Jan 2 2006",
}

// ParseDate parses a single lenient month-name date string.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// DateValue normalizes a date string. Earnings dates sometimes arrive
// as a range like "Oct 26, 2020 - Oct 30, 2020"; only the first date is
// kept, standardizing on a point estimate over a range.
func DateValue(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	if parts := strings.Split(value, "-"); len(parts) > 1 {
		value = parts[0]
	}
	t, err := ParseDate(value)
	if err != nil {
		return Missing(), err
	}
	return Date(t), nil
}

// Symbol uppercases a ticker symbol.
func Symbol(value string) (Value, error) {
	return Str(strings.ToUpper(value)), nil
}

// QuoteName removes the trailing "(SYMBOL)" from a company name, e.g.
// "Apple Inc. (AAPL)" becomes "Apple Inc.".
func QuoteName(value string) (Value, error) {
	name, _, _ := strings.Cut(value, "(")
	return Str(strings.TrimSpace(name)), nil
}

// splitPair splits value on delim, requiring exactly one occurrence.
func splitPair(value, delim string) (string, string, error) {
	parts := strings.Split(value, delim)
	if len(parts) != 2 {
		return "", "", &MalformedTokenError{Token: value, Delim: delim}
	}
	return parts[0], parts[1], nil
}

// FirstOfDash returns the first half of a "low - high" range token.
func FirstOfDash(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	first, _, err := splitPair(value, "-")
	if err != nil {
		return Missing(), err
	}
	return commonValue(first)
}

// SecondOfDash returns the second half of a "low - high" range token.
func SecondOfDash(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	_, second, err := splitPair(value, "-")
	if err != nil {
		return Missing(), err
	}
	return commonValue(second)
}

// FirstOfX returns the price part of a "price x size" token.
func FirstOfX(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	first, _, err := splitPair(value, "x")
	if err != nil {
		return Missing(), err
	}
	return commonValue(first)
}

// SecondOfX returns the size part of a "price x size" token.
func SecondOfX(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	_, second, err := splitPair(value, "x")
	if err != nil {
		return Missing(), err
	}
	return commonValue(second)
}

// FirstOfSpace returns the change part of a "change (percent%)" token.
func FirstOfSpace(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	stripped := RemovePercentSign(RemoveBrackets(value))
	first, _, err := splitPair(stripped, " ")
	if err != nil {
		return Missing(), err
	}
	return Str(first), nil
}

// SecondOfSpace returns the percent part of a "change (percent%)" token.
func SecondOfSpace(value string) (Value, error) {
	if IsMissing(value) {
		return Missing(), nil
	}
	stripped := RemovePercentSign(RemoveBrackets(value))
	_, second, err := splitPair(stripped, " ")
	if err != nil {
		return Missing(), err
	}
	return Str(second), nil
}
