// Package statistics scrapes the key-statistics page: the valuation
// measures table plus the financial highlights and trading information
// sections.
package statistics

import (
	"sort"
	"strconv"
	"time"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/quote"
	"tickerscrape/internal/schema"
)

// PeriodType describes the interval a valuation column covers.
type PeriodType string

const (
	PeriodAnnually  PeriodType = "Annually"
	PeriodQuarterly PeriodType = "Quarterly"
	PeriodMonthly   PeriodType = "Monthly"
)

// Valuation is one column of the valuation measures table: every
// measure as of a single date.
type Valuation struct {
	Date       time.Time
	PeriodType PeriodType

	MarketCapIntraday        *int64
	EnterpriseValue          *int64
	TrailingPE               *float64
	ForwardPE                *float64
	PEGRatioFiveYearExpected *float64
	PriceSalesTTM            *float64
	PriceBookMRQ             *float64
	EnterpriseValueRevenue   *float64
	EnterpriseValueEBITDA    *float64
}

// valuationSchema keys match the footnote-suffixed labels the page
// renders, e.g. "Market Cap (intraday) 5" derives market_cap_intraday_5.
var valuationSchema = &schema.Schema{
	Kind: "valuation",
	Fields: []schema.Field{
		{Name: "date", Kind: schema.Date, Clean: clean.DateValue, Required: true},
		{Name: "market_cap_intraday", Source: "market_cap_intraday_5", Kind: schema.Int},
		{Name: "enterprise_value", Source: "enterprise_value_3", Kind: schema.Int},
		{Name: "trailing_pe", Source: "trailing_p_e", Kind: schema.Float},
		{Name: "forward_pe", Source: "forward_p_e_1", Kind: schema.Float},
		{Name: "peg_ratio_five_year_expected", Source: "peg_ratio_five_year_expected_1", Kind: schema.Float},
		{Name: "price_sales_ttm", Kind: schema.Float},
		{Name: "price_book_mrq", Kind: schema.Float},
		{Name: "enterprise_value_revenue", Source: "enterprise_value_revenue_3", Kind: schema.Float},
		{Name: "enterprise_value_ebitda", Source: "enterprise_value_ebitda_6", Kind: schema.Float},
	},
}

func valuationFromRaw(raw map[string]string, period PeriodType) (*Valuation, error) {
	rec, err := valuationSchema.Assemble(raw)
	if err != nil {
		return nil, err
	}

	date, _ := rec["date"].Date()
	return &Valuation{
		Date:       date,
		PeriodType: period,

		MarketCapIntraday:        rec.IntPtr("market_cap_intraday"),
		EnterpriseValue:          rec.IntPtr("enterprise_value"),
		TrailingPE:               rec.FloatPtr("trailing_pe"),
		ForwardPE:                rec.FloatPtr("forward_pe"),
		PEGRatioFiveYearExpected: rec.FloatPtr("peg_ratio_five_year_expected"),
		PriceSalesTTM:            rec.FloatPtr("price_sales_ttm"),
		PriceBookMRQ:             rec.FloatPtr("price_book_mrq"),
		EnterpriseValueRevenue:   rec.FloatPtr("enterprise_value_revenue"),
		EnterpriseValueEBITDA:    rec.FloatPtr("enterprise_value_ebitda"),
	}, nil
}

// ValuationMeasuresTable holds every column of the valuation table.
type ValuationMeasuresTable struct {
	Valuations []Valuation
}

// Sort orders valuations ascending by date.
func (t *ValuationMeasuresTable) Sort() {
	sort.SliceStable(t.Valuations, func(i, j int) bool {
		return t.Valuations[i].Date.Before(t.Valuations[j].Date)
	})
}

// Dates returns the valuation dates in current column order.
func (t *ValuationMeasuresTable) Dates() []time.Time {
	dates := make([]time.Time, 0, len(t.Valuations))
	for _, v := range t.Valuations {
		dates = append(dates, v.Date)
	}
	return dates
}

// FinancialHighlights is the financial highlights section: fiscal
// calendar, profitability, income statement, balance sheet and cash
// flow measures.
type FinancialHighlights struct {
	FiscalYearEnds       *time.Time
	MostRecentQuarterMRQ *time.Time

	ProfitMargin       *float64
	OperatingMarginTTM *float64

	ReturnOnAssetsTTM *float64
	ReturnOnEquityTTM *float64

	RevenueTTM                 *int64
	RevenuePerShareTTM         *float64
	QuarterlyRevenueGrowthYOY  *float64
	GrossProfitTTM             *int64
	EBITDA                     *int64
	NetIncomeAviToCommonTTM    *int64
	DilutedEPSTTM              *float64
	QuarterlyEarningsGrowthYOY *float64

	TotalCashMRQ         *int64
	TotalCashPerShareMRQ *float64
	TotalDebtMRQ         *int64
	TotalDebtEquityMRQ   *float64
	CurrentRatioMRQ      *float64
	BookValuePerShareMRQ *float64

	LeveredFreeCashFlowTTM *int64
	OperatingCashFlowTTM   *int64
}

var highlightsSchema = &schema.Schema{
	Kind: "financial_highlights",
	Fields: []schema.Field{
		{Name: "fiscal_year_ends", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "most_recent_quarter_mrq", Kind: schema.Date, Clean: clean.DateValue},

		{Name: "profit_margin", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "operating_margin_ttm", Kind: schema.Float, Clean: clean.Percentage},

		{Name: "return_on_assets_ttm", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "return_on_equity_ttm", Kind: schema.Float, Clean: clean.Percentage},

		{Name: "revenue_ttm", Kind: schema.Int},
		{Name: "revenue_per_share_ttm", Kind: schema.Float},
		{Name: "quarterly_revenue_growth_yoy", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "gross_profit_ttm", Kind: schema.Int},
		{Name: "ebitda", Kind: schema.Int},
		{Name: "net_income_avi_to_common_ttm", Kind: schema.Int},
		{Name: "diluted_eps_ttm", Kind: schema.Float},
		{Name: "quarterly_earnings_growth_yoy", Kind: schema.Float, Clean: clean.Percentage},

		{Name: "total_cash_mrq", Kind: schema.Int},
		{Name: "total_cash_per_share_mrq", Kind: schema.Float},
		{Name: "total_debt_mrq", Kind: schema.Int},
		{Name: "total_debt_equity_mrq", Kind: schema.Float},
		{Name: "current_ratio_mrq", Kind: schema.Float},
		{Name: "book_value_per_share_mrq", Kind: schema.Float},

		{Name: "levered_free_cash_flow_ttm", Kind: schema.Int},
		{Name: "operating_cash_flow_ttm", Kind: schema.Int},
	},
}

func highlightsFromRaw(raw map[string]string) (*FinancialHighlights, error) {
	rec, err := highlightsSchema.Assemble(raw)
	if err != nil {
		return nil, err
	}

	return &FinancialHighlights{
		FiscalYearEnds:       rec.DatePtr("fiscal_year_ends"),
		MostRecentQuarterMRQ: rec.DatePtr("most_recent_quarter_mrq"),

		ProfitMargin:       rec.FloatPtr("profit_margin"),
		OperatingMarginTTM: rec.FloatPtr("operating_margin_ttm"),

		ReturnOnAssetsTTM: rec.FloatPtr("return_on_assets_ttm"),
		ReturnOnEquityTTM: rec.FloatPtr("return_on_equity_ttm"),

		RevenueTTM:                 rec.IntPtr("revenue_ttm"),
		RevenuePerShareTTM:         rec.FloatPtr("revenue_per_share_ttm"),
		QuarterlyRevenueGrowthYOY:  rec.FloatPtr("quarterly_revenue_growth_yoy"),
		GrossProfitTTM:             rec.IntPtr("gross_profit_ttm"),
		EBITDA:                     rec.IntPtr("ebitda"),
		NetIncomeAviToCommonTTM:    rec.IntPtr("net_income_avi_to_common_ttm"),
		DilutedEPSTTM:              rec.FloatPtr("diluted_eps_ttm"),
		QuarterlyEarningsGrowthYOY: rec.FloatPtr("quarterly_earnings_growth_yoy"),

		TotalCashMRQ:         rec.IntPtr("total_cash_mrq"),
		TotalCashPerShareMRQ: rec.FloatPtr("total_cash_per_share_mrq"),
		TotalDebtMRQ:         rec.IntPtr("total_debt_mrq"),
		TotalDebtEquityMRQ:   rec.FloatPtr("total_debt_equity_mrq"),
		CurrentRatioMRQ:      rec.FloatPtr("current_ratio_mrq"),
		BookValuePerShareMRQ: rec.FloatPtr("book_value_per_share_mrq"),

		LeveredFreeCashFlowTTM: rec.IntPtr("levered_free_cash_flow_ttm"),
		OperatingCashFlowTTM:   rec.IntPtr("operating_cash_flow_ttm"),
	}, nil
}

// TradingInformation is the trading information section: price history,
// share statistics, short interest and dividend data.
type TradingInformation struct {
	BetaFiveYearMonthly *float64

	FiftyTwoWeekChange         *float64
	SP500FiftyTwoWeekChange    *float64
	FiftyTwoWeekHigh           *float64
	FiftyTwoWeekLow            *float64
	FiftyDayMovingAverage      *float64
	TwoHundredDayMovingAverage *float64

	AverageThreeMonthVolume   *int64
	AverageTenDayVolume       *int64
	SharesOutstanding         *int64
	Float                     *int64
	PercentHeldByInsiders     *float64
	PercentHeldByInstitutions *float64

	SharesShort                         *int64
	SharesShortDate                     *time.Time
	ShortRatio                          *float64
	ShortRatioDate                      *time.Time
	ShortPercentOfFloat                 *float64
	ShortPercentOfFloatDate             *time.Time
	ShortPercentOfSharesOutstanding     *float64
	ShortPercentOfSharesOutstandingDate *time.Time
	SharesShortPriorMonth               *int64
	SharesShortPriorMonthDate           *time.Time

	ForwardAnnualDividendRate   *float64
	ForwardAnnualDividendYield  *float64
	TrailingAnnualDividendRate  *float64
	TrailingAnnualDividendYield *float64

	FiveYearAverageDividendYield *float64

	PayoutRatio    *float64
	DividendDate   *time.Time
	ExDividendDate *time.Time

	LastSplitFactor *string
	LastSplitDate   *time.Time
}

// tradingInfoSchema sources carry the page's footnote suffixes. The
// short-interest fields have no suffix: their raw keys are rebuilt by
// the parser when it splits the embedded report date out of the label.
var tradingInfoSchema = &schema.Schema{
	Kind: "trading_information",
	Fields: []schema.Field{
		{Name: "beta_five_year_monthly", Kind: schema.Float},

		{Name: "fifty_two_week_change", Source: "fifty_twoweek_change_3", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "sp500_fifty_two_week_change", Source: "sp500_fifty_twoweek_change_3", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "fifty_two_week_high", Source: "fifty_two_week_high_3", Kind: schema.Float},
		{Name: "fifty_two_week_low", Source: "fifty_two_week_low_3", Kind: schema.Float},
		{Name: "fifty_day_moving_average", Source: "fifty_day_moving_average_3", Kind: schema.Float},
		{Name: "two_hundred_day_moving_average", Source: "two_hundred_day_moving_average_3", Kind: schema.Float},

		{Name: "average_three_month_volume", Source: "avg_vol_three_month_3", Kind: schema.Int},
		{Name: "average_ten_day_volume", Source: "avg_vol_ten_day_3", Kind: schema.Int},
		{Name: "shares_outstanding", Source: "shares_outstanding_5", Kind: schema.Int},
		{Name: "float", Kind: schema.Int},
		{Name: "percent_held_by_insiders", Source: "percent_held_by_insiders_1", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "percent_held_by_institutions", Source: "percent_held_by_institutions_1", Kind: schema.Float, Clean: clean.Percentage},

		{Name: "shares_short", Kind: schema.Int},
		{Name: "shares_short_date", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "short_ratio", Kind: schema.Float},
		{Name: "short_ratio_date", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "short_percent_of_float", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "short_percent_of_float_date", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "short_percent_of_shares_outstanding", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "short_percent_of_shares_outstanding_date", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "shares_short_prior_month", Kind: schema.Int},
		{Name: "shares_short_prior_month_date", Kind: schema.Date, Clean: clean.DateValue},

		{Name: "forward_annual_dividend_rate", Source: "forward_annual_dividend_rate_4", Kind: schema.Float},
		{Name: "forward_annual_dividend_yield", Source: "forward_annual_dividend_yield_4", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "trailing_annual_dividend_rate", Source: "trailing_annual_dividend_rate_3", Kind: schema.Float},
		{Name: "trailing_annual_dividend_yield", Source: "trailing_annual_dividend_yield_3", Kind: schema.Float, Clean: clean.Percentage},

		{Name: "five_year_average_dividend_yield", Source: "five_year_average_dividend_yield_4", Kind: schema.Float},

		{Name: "payout_ratio", Source: "payout_ratio_4", Kind: schema.Float, Clean: clean.Percentage},
		{Name: "dividend_date", Source: "dividend_date_3", Kind: schema.Date, Clean: clean.DateValue},
		{Name: "exdividend_date", Source: "exdividend_date_4", Kind: schema.Date, Clean: clean.DateValue},

		{Name: "last_split_factor", Source: "last_split_factor_2", Kind: schema.String},
		{Name: "last_split_date", Source: "last_split_date_3", Kind: schema.Date, Clean: clean.DateValue},
	},
}

func tradingInfoFromRaw(raw map[string]string) (*TradingInformation, error) {
	rec, err := tradingInfoSchema.Assemble(raw)
	if err != nil {
		return nil, err
	}

	return &TradingInformation{
		BetaFiveYearMonthly: rec.FloatPtr("beta_five_year_monthly"),

		FiftyTwoWeekChange:         rec.FloatPtr("fifty_two_week_change"),
		SP500FiftyTwoWeekChange:    rec.FloatPtr("sp500_fifty_two_week_change"),
		FiftyTwoWeekHigh:           rec.FloatPtr("fifty_two_week_high"),
		FiftyTwoWeekLow:            rec.FloatPtr("fifty_two_week_low"),
		FiftyDayMovingAverage:      rec.FloatPtr("fifty_day_moving_average"),
		TwoHundredDayMovingAverage: rec.FloatPtr("two_hundred_day_moving_average"),

		AverageThreeMonthVolume:   rec.IntPtr("average_three_month_volume"),
		AverageTenDayVolume:       rec.IntPtr("average_ten_day_volume"),
		SharesOutstanding:         rec.IntPtr("shares_outstanding"),
		Float:                     rec.IntPtr("float"),
		PercentHeldByInsiders:     rec.FloatPtr("percent_held_by_insiders"),
		PercentHeldByInstitutions: rec.FloatPtr("percent_held_by_institutions"),

		SharesShort:                         rec.IntPtr("shares_short"),
		SharesShortDate:                     rec.DatePtr("shares_short_date"),
		ShortRatio:                          rec.FloatPtr("short_ratio"),
		ShortRatioDate:                      rec.DatePtr("short_ratio_date"),
		ShortPercentOfFloat:                 rec.FloatPtr("short_percent_of_float"),
		ShortPercentOfFloatDate:             rec.DatePtr("short_percent_of_float_date"),
		ShortPercentOfSharesOutstanding:     rec.FloatPtr("short_percent_of_shares_outstanding"),
		ShortPercentOfSharesOutstandingDate: rec.DatePtr("short_percent_of_shares_outstanding_date"),
		SharesShortPriorMonth:               rec.IntPtr("shares_short_prior_month"),
		SharesShortPriorMonthDate:           rec.DatePtr("shares_short_prior_month_date"),

		ForwardAnnualDividendRate:   rec.FloatPtr("forward_annual_dividend_rate"),
		ForwardAnnualDividendYield:  rec.FloatPtr("forward_annual_dividend_yield"),
		TrailingAnnualDividendRate:  rec.FloatPtr("trailing_annual_dividend_rate"),
		TrailingAnnualDividendYield: rec.FloatPtr("trailing_annual_dividend_yield"),

		FiveYearAverageDividendYield: rec.FloatPtr("five_year_average_dividend_yield"),

		PayoutRatio:    rec.FloatPtr("payout_ratio"),
		DividendDate:   rec.DatePtr("dividend_date"),
		ExDividendDate: rec.DatePtr("exdividend_date"),

		LastSplitFactor: rec.StrPtr("last_split_factor"),
		LastSplitDate:   rec.DatePtr("last_split_date"),
	}, nil
}

// StatisticsPage is the typed record for one symbol's key-statistics
// page. All four sections are present; a page missing any of them is
// reported as not found at parse time.
type StatisticsPage struct {
	Symbol              string
	Quote               quote.Quote
	ValuationMeasures   ValuationMeasuresTable
	FinancialHighlights FinancialHighlights
	TradingInformation  TradingInformation
}

// StatisticsPageGroup collects statistics pages from a batch.
type StatisticsPageGroup struct {
	Pages []*StatisticsPage
}

// Append adds a page to the group.
func (g *StatisticsPageGroup) Append(page *StatisticsPage) {
	g.Pages = append(g.Pages, page)
}

// Len returns the number of pages.
func (g *StatisticsPageGroup) Len() int { return len(g.Pages) }

// Symbols returns the symbols present, in current page order.
func (g *StatisticsPageGroup) Symbols() []string {
	symbols := make([]string, 0, len(g.Pages))
	for _, page := range g.Pages {
		symbols = append(symbols, page.Symbol)
	}
	return symbols
}

// Sort orders pages ascending by symbol.
func (g *StatisticsPageGroup) Sort() {
	sort.SliceStable(g.Pages, func(i, j int) bool {
		return g.Pages[i].Symbol < g.Pages[j].Symbol
	})
}

// Concat returns a new group holding the pages of both operands.
func (g *StatisticsPageGroup) Concat(other *StatisticsPageGroup) *StatisticsPageGroup {
	combined := &StatisticsPageGroup{Pages: make([]*StatisticsPage, 0, len(g.Pages)+len(other.Pages))}
	combined.Pages = append(combined.Pages, g.Pages...)
	combined.Pages = append(combined.Pages, other.Pages...)
	return combined
}

// Table renders the group as rows of display strings.
func (g *StatisticsPageGroup) Table() [][]string {
	rows := [][]string{{"Symbol", "Name", "Close", "Shares Outstanding", "Profit Margin %"}}
	for _, page := range g.Pages {
		rows = append(rows, []string{
			page.Symbol,
			page.Quote.Name,
			displayFloat(page.Quote.Close),
			displayInt(page.TradingInformation.SharesOutstanding),
			displayFloat(page.FinancialHighlights.ProfitMargin),
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
