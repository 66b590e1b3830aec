// Package htmltable extracts raw label/value maps from scraped tables.
package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/clean"
)

// TwoColumn walks every table row under sel and maps the derived field
// name of the left cell to the raw text of the right cell. Rows without
// exactly two cells are skipped; for duplicate keys the last occurrence
// wins. Returns nil when no rows qualify.
func TwoColumn(sel *goquery.Selection) map[string]string {
	raw := make(map[string]string)

	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() != 2 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label == "" {
			return
		}
		raw[clean.FieldName(label)] = value
	})

	if len(raw) == 0 {
		return nil
	}
	return raw
}

// CellTexts returns the trimmed text of every cell in row.
func CellTexts(row *goquery.Selection) []string {
	var texts []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
