// Package quote parses the quote header section shared by every
// finance page: company name, close price, dollar change and percent
// change.
package quote

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/schema"
)

// headerSelectors map logical fields to the header's CSS classes.
// change and percent_change share one selector; the exactly-one-match
// rule below keeps them from clobbering each other.
var headerSelectors = []struct {
	field    string
	selector string
}{
	{"name", `.D\(ib\).Fz\(18px\)`},
	{"close", `.Trsdu\(0\.3s\).Fw\(b\).Fz\(36px\).Mb\(-4px\).D\(ib\)`},
	{"change", `.Trsdu\(0\.3s\).Fw\(500\)`},
	{"percent_change", `.Trsdu\(0\.3s\).Fw\(500\)`},
}

// Quote holds the parsed header values. Close, Change and
// PercentChange are nil when the page omits them.
type Quote struct {
	Name          string
	Close         *float64
	Change        *float64
	PercentChange *float64
}

// Schema assembles the raw header map into a Quote.
var Schema = &schema.Schema{
	Kind: "quote",
	Fields: []schema.Field{
		{Name: "name", Kind: schema.String, Clean: clean.QuoteName, Required: true},
		{Name: "close", Kind: schema.Float, Clean: clean.Common},
		{Name: "change", Kind: schema.Float, Clean: clean.FirstOfSpace},
		{Name: "percent_change", Kind: schema.Float, Clean: clean.SecondOfSpace},
	},
}

// ParseHeader extracts the raw header fields. A field is kept only when
// its selector matches exactly one element inside the header block;
// zero or multiple matches drop that field, not the whole header.
// Returns nil when the header block is absent or empty.
func ParseHeader(doc *goquery.Document) map[string]string {
	header := doc.Find("div#quote-header-info").First()
	if header.Length() == 0 {
		return nil
	}

	raw := make(map[string]string)
	for _, hs := range headerSelectors {
		matches := header.Find(hs.selector)
		if matches.Length() == 1 {
			raw[hs.field] = strings.TrimSpace(matches.First().Text())
		}
	}

	if len(raw) == 0 {
		return nil
	}
	return raw
}

// FromRaw assembles a Quote from a raw header map.
func FromRaw(raw map[string]string) (*Quote, error) {
	rec, err := Schema.Assemble(raw)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Name:          rec.Str("name"),
		Close:         rec.FloatPtr("close"),
		Change:        rec.FloatPtr("change"),
		PercentChange: rec.FloatPtr("percent_change"),
	}, nil
}

// Parse extracts and assembles the quote header in one step. Returns
// nil when the header is absent.
func Parse(doc *goquery.Document) (*Quote, error) {
	raw := ParseHeader(doc)
	if raw == nil {
		return nil, nil
	}
	return FromRaw(raw)
}
