package clean

import "strings"

// fieldReplacements are applied in order to a lowercased label. The
// order is load-bearing: alias resolution downstream depends on the
// derived names character-for-character.
var fieldReplacements = [][2]string{
	{"(", ""},
	{")", ""},
	{"'", ""},
	{".", ""},
	{"& ", ""},
	{"-", ""},
	{"52", "fifty_two"},
	{"5y", "five_year"},
	{"1y", "one_year"},
	{" ", "_"},
	{"5_yr", "five_year"},
	{"5_year", "five_year"},
	{"200day", "two_hundred_day"},
	{"50day", "fifty_day"},
	{"/", "_"},
	{"&", ""},
	{"%", "percent"},
	{"10_day", "ten_day"},
	{"3_month", "three_month"},
}

// FieldName converts a scraped table label into a snake_case field
// name, e.g. "Beta (5Y Monthly)" -> "beta_five_year_monthly" and
// "PE Ratio (TTM)" -> "pe_ratio_ttm".
func FieldName(label string) string {
	field := strings.ToLower(label)
	for _, r := range fieldReplacements {
		field = strings.ReplaceAll(field, r[0], r[1])
	}
	return strings.TrimSpace(field)
}
