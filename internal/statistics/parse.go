package statistics

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/fetcher"
	"tickerscrape/internal/htmltable"
	"tickerscrape/internal/quote"
)

const (
	valuationTableSelector = `table.W\(100\%\).Bdcl\(c\).M\(0\).Whs\(n\).D\(itb\)`
	highlightsSelector     = `.Mb\(10px\).Pend\(20px\).smartphone_Pend\(0px\)`
	tradingInfoSelector    = `.Fl\(end\).W\(50\%\).smartphone_W\(100\%\)`
)

// cleanPeriodHeader strips the "Current" marker and its "As of Date:"
// tooltip text from a valuation column header, leaving the bare date.
func cleanPeriodHeader(header string) string {
	header = strings.ReplaceAll(header, "Current", "")
	header = strings.ReplaceAll(header, "As of Date:", "")
	return strings.TrimSpace(header)
}

// ParseValuationTable parses the transposed valuation measures table:
// one row per measure, one column per period date. Returns nil when the
// table is absent.
func ParseValuationTable(doc *goquery.Document, period PeriodType) (*ValuationMeasuresTable, error) {
	table := doc.Find(valuationTableSelector).First()
	if table.Length() == 0 {
		return nil, nil
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, nil
	}

	headers := htmltable.CellTexts(rows.First())
	if len(headers) < 2 {
		return nil, nil
	}

	columns := make([]map[string]string, len(headers)-1)
	for i, header := range headers[1:] {
		columns[i] = map[string]string{"date": cleanPeriodHeader(header)}
	}

	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := htmltable.CellTexts(row)
		if len(cells) < 2 {
			return
		}
		field := clean.FieldName(cells[0])
		for i, value := range cells[1:] {
			if i < len(columns) {
				columns[i][field] = value
			}
		}
	})

	result := &ValuationMeasuresTable{Valuations: make([]Valuation, 0, len(columns))}
	for _, raw := range columns {
		v, err := valuationFromRaw(raw, period)
		if err != nil {
			return nil, err
		}
		result.Valuations = append(result.Valuations, *v)
	}
	return result, nil
}

// ParseFinancialHighlights parses the financial highlights section.
// Returns nil when the section is absent.
func ParseFinancialHighlights(doc *goquery.Document) (*FinancialHighlights, error) {
	section := doc.Find(highlightsSelector).First()
	if section.Length() == 0 {
		return nil, nil
	}

	raw := htmltable.TwoColumn(section)
	if raw == nil {
		return nil, nil
	}
	return highlightsFromRaw(raw)
}

// ParseTradingInformation parses the trading information section.
// Short-interest rows embed the report date in the label, e.g.
// "Shares Short (Aug 13, 2020) 4"; the date is split out into a
// companion _date field so the value keys stay stable across reports.
// Returns nil when the section is absent.
func ParseTradingInformation(doc *goquery.Document) (*TradingInformation, error) {
	section := doc.Find(tradingInfoSelector).First()
	if section.Length() == 0 {
		return nil, nil
	}

	raw := htmltable.TwoColumn(section)
	if raw == nil {
		raw = make(map[string]string)
	}

	section.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := htmltable.CellTexts(row)
		if len(cells) != 2 {
			return
		}
		label, value := cells[0], cells[1]
		if clean.IsMissing(value) || !strings.Contains(label, "Short") {
			return
		}

		// "Shares Short (prior month Jul 14, 2020) 4" keeps "prior
		// month" with the field name, not the date.
		label = strings.ReplaceAll(label, "(prior month ", "prior month (")

		fieldPart, datePart, found := strings.Cut(label, "(")
		if !found {
			return
		}

		fieldName := clean.FieldName(fieldPart)
		datePart = strings.ReplaceAll(datePart, ") 4", "")

		raw[fieldName+"date"] = datePart
		raw[strings.Trim(fieldName, "_")] = value
	})

	if len(raw) == 0 {
		return nil, nil
	}
	return tradingInfoFromRaw(raw)
}

// Parse builds a StatisticsPage from the page HTML for symbol. A page
// missing the quote header or any of the three sections is reported as
// not found; unknown symbols are served as a 200 shell page without
// them.
func Parse(symbol, html string) (*StatisticsPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fetcher.NewValidationError(symbol, "unparseable page")
	}

	q, err := quote.Parse(doc)
	if err != nil {
		return nil, err
	}

	valuations, err := ParseValuationTable(doc, PeriodQuarterly)
	if err != nil {
		return nil, err
	}
	highlights, err := ParseFinancialHighlights(doc)
	if err != nil {
		return nil, err
	}
	trading, err := ParseTradingInformation(doc)
	if err != nil {
		return nil, err
	}

	if q == nil || valuations == nil || highlights == nil || trading == nil {
		return nil, fetcher.NewNotFoundError(symbol, 0)
	}

	return &StatisticsPage{
		Symbol:              symbol,
		Quote:               *q,
		ValuationMeasures:   *valuations,
		FinancialHighlights: *highlights,
		TradingInformation:  *trading,
	}, nil
}
