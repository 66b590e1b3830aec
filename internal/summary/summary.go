// Package summary scrapes the finance summary page: the quote header
// plus the two-column detail table (ranges, bid/ask, volume, valuation
// ratios, dividend dates).
package summary

import (
	"sort"
	"strconv"
	"time"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/quote"
	"tickerscrape/internal/schema"
)

// SummaryPage is the typed record for one symbol's summary page.
// Pointer fields are nil when the page reported no value.
type SummaryPage struct {
	Symbol string
	Name   string
	Quote  quote.Quote

	Open  *float64
	High  *float64
	Low   *float64
	Close *float64

	Change        *float64
	PercentChange *float64

	PreviousClose *float64

	BidPrice *float64
	BidSize  *int64
	AskPrice *float64
	AskSize  *int64

	FiftyTwoWeekLow  *float64
	FiftyTwoWeekHigh *float64

	Volume        *int64
	AverageVolume *int64

	MarketCap *int64

	BetaFiveYearMonthly *float64
	PERatioTTM          *float64
	EPSTTM              *float64

	EarningsDate *time.Time

	ForwardDividendYield        *float64
	ForwardDividendYieldPercent *float64
	ExDividendDate              *time.Time

	OneYearTargetEst *float64
}

// pageSchema declares every logical field of the summary page. The
// range and bid/ask entries fan one raw key out into two fields.
var pageSchema = &schema.Schema{
	Kind: "summary",
	Fields: []schema.Field{
		{Name: "symbol", Kind: schema.String, Clean: clean.Symbol, Required: true},
		{Name: "name", Kind: schema.String, Clean: clean.QuoteName, Required: true},

		{Name: "open", Kind: schema.Float},
		{Name: "low", Source: "days_range", Kind: schema.Float, Clean: clean.FirstOfDash},
		{Name: "high", Source: "days_range", Kind: schema.Float, Clean: clean.SecondOfDash},
		{Name: "close", Kind: schema.Float},

		{Name: "change", Kind: schema.Float, Clean: clean.FirstOfSpace},
		{Name: "percent_change", Source: "change", Kind: schema.Float, Clean: clean.SecondOfSpace},

		{Name: "previous_close", Kind: schema.Float},

		{Name: "bid_price", Source: "bid", Kind: schema.Float, Clean: clean.FirstOfX},
		{Name: "bid_size", Source: "bid", Kind: schema.Int, Clean: clean.SecondOfX},
		{Name: "ask_price", Source: "ask", Kind: schema.Float, Clean: clean.FirstOfX},
		{Name: "ask_size", Source: "ask", Kind: schema.Int, Clean: clean.SecondOfX},

		{Name: "fifty_two_week_low", Source: "fifty_two_week_range", Kind: schema.Float, Clean: clean.FirstOfDash},
		{Name: "fifty_two_week_high", Source: "fifty_two_week_range", Kind: schema.Float, Clean: clean.SecondOfDash},

		{Name: "volume", Kind: schema.Int},
		{Name: "average_volume", Source: "avg_volume", Kind: schema.Int},

		{Name: "market_cap", Kind: schema.Int},

		{Name: "beta_five_year_monthly", Kind: schema.Float},
		{Name: "pe_ratio_ttm", Kind: schema.Float},
		{Name: "eps_ttm", Kind: schema.Float},

		{Name: "earnings_date", Kind: schema.Date, Clean: clean.DateValue},

		{Name: "forward_dividend_yield", Kind: schema.Float, Clean: clean.FirstOfSpace},
		{Name: "forward_dividend_yield_percent", Source: "forward_dividend_yield", Kind: schema.Float, Clean: clean.SecondOfSpace},
		{Name: "exdividend_date", Kind: schema.Date, Clean: clean.DateValue},

		{Name: "one_year_target_est", Kind: schema.Float},
	},
}

// fromRaw assembles a SummaryPage from the merged raw field map.
func fromRaw(q *quote.Quote, raw map[string]string) (*SummaryPage, error) {
	rec, err := pageSchema.Assemble(raw)
	if err != nil {
		return nil, err
	}

	return &SummaryPage{
		Symbol: rec.Str("symbol"),
		Name:   rec.Str("name"),
		Quote:  *q,

		Open:  rec.FloatPtr("open"),
		High:  rec.FloatPtr("high"),
		Low:   rec.FloatPtr("low"),
		Close: rec.FloatPtr("close"),

		Change:        rec.FloatPtr("change"),
		PercentChange: rec.FloatPtr("percent_change"),

		PreviousClose: rec.FloatPtr("previous_close"),

		BidPrice: rec.FloatPtr("bid_price"),
		BidSize:  rec.IntPtr("bid_size"),
		AskPrice: rec.FloatPtr("ask_price"),
		AskSize:  rec.IntPtr("ask_size"),

		FiftyTwoWeekLow:  rec.FloatPtr("fifty_two_week_low"),
		FiftyTwoWeekHigh: rec.FloatPtr("fifty_two_week_high"),

		Volume:        rec.IntPtr("volume"),
		AverageVolume: rec.IntPtr("average_volume"),

		MarketCap: rec.IntPtr("market_cap"),

		BetaFiveYearMonthly: rec.FloatPtr("beta_five_year_monthly"),
		PERatioTTM:          rec.FloatPtr("pe_ratio_ttm"),
		EPSTTM:              rec.FloatPtr("eps_ttm"),

		EarningsDate: rec.DatePtr("earnings_date"),

		ForwardDividendYield:        rec.FloatPtr("forward_dividend_yield"),
		ForwardDividendYieldPercent: rec.FloatPtr("forward_dividend_yield_percent"),
		ExDividendDate:              rec.DatePtr("exdividend_date"),

		OneYearTargetEst: rec.FloatPtr("one_year_target_est"),
	}, nil
}

// SummaryPageGroup collects summary pages from a batch, keyed by
// canonical symbol.
type SummaryPageGroup struct {
	Pages []*SummaryPage
}

// Append adds a page to the group.
func (g *SummaryPageGroup) Append(page *SummaryPage) {
	g.Pages = append(g.Pages, page)
}

// Len returns the number of pages.
func (g *SummaryPageGroup) Len() int { return len(g.Pages) }

// Symbols returns the symbols present, in current page order.
func (g *SummaryPageGroup) Symbols() []string {
	symbols := make([]string, 0, len(g.Pages))
	for _, page := range g.Pages {
		symbols = append(symbols, page.Symbol)
	}
	return symbols
}

// Sort orders pages ascending by symbol. Sorting twice is a no-op.
func (g *SummaryPageGroup) Sort() {
	sort.SliceStable(g.Pages, func(i, j int) bool {
		return g.Pages[i].Symbol < g.Pages[j].Symbol
	})
}

// Table renders the group as rows of display strings, one header row
// followed by one row per page. Missing values render as "-".
func (g *SummaryPageGroup) Table() [][]string {
	rows := [][]string{{"Symbol", "Name", "Close", "Change", "% Change", "Volume", "Market Cap"}}
	for _, page := range g.Pages {
		rows = append(rows, []string{
			page.Symbol,
			page.Name,
			displayFloat(page.Close),
			displayFloat(page.Change),
			displayFloat(page.PercentChange),
			displayInt(page.Volume),
			displayInt(page.MarketCap),
		})
	}
	return rows
}

func displayFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func displayInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

// Concat returns a new group holding the pages of both operands.
func (g *SummaryPageGroup) Concat(other *SummaryPageGroup) *SummaryPageGroup {
	combined := &SummaryPageGroup{Pages: make([]*SummaryPage, 0, len(g.Pages)+len(other.Pages))}
	combined.Pages = append(combined.Pages, g.Pages...)
	combined.Pages = append(combined.Pages, other.Pages...)
	return combined
}
