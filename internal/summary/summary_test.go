package summary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"tickerscrape/internal/coordinator"
	"tickerscrape/internal/fetcher"
	"tickerscrape/internal/testutil"
)

const applePage = `<html><body>
<div id="quote-header-info">
  <div class="D(ib) Fz(18px)">Apple Inc. (AAPL)</div>
  <span class="Trsdu(0.3s) Fw(b) Fz(36px) Mb(-4px) D(ib)">115.97</span>
  <span class="Trsdu(0.3s) Fw(500)">+1.26 (+1.10%)</span>
</div>
<div id="quote-summary">
<table><tbody>
<tr><td>Previous Close</td><td>114.71</td></tr>
<tr><td>Open</td><td>114.86</td></tr>
<tr><td>Bid</td><td>115.89 x 1100</td></tr>
<tr><td>Ask</td><td>115.98 x 1300</td></tr>
<tr><td>Day's Range</td><td>114.13 - 116.55</td></tr>
<tr><td>52 Week Range</td><td>53.15 - 137.98</td></tr>
<tr><td>Volume</td><td>111,850,657</td></tr>
<tr><td>Avg. Volume</td><td>173,139,104</td></tr>
</tbody></table>
<table><tbody>
<tr><td>Market Cap</td><td>1.966T</td></tr>
<tr><td>Beta (5Y Monthly)</td><td>1.32</td></tr>
<tr><td>PE Ratio (TTM)</td><td>35.26</td></tr>
<tr><td>EPS (TTM)</td><td>3.29</td></tr>
<tr><td>Earnings Date</td><td>Oct 28, 2020 - Nov 02, 2020</td></tr>
<tr><td>Forward Dividend &amp; Yield</td><td>0.82 (0.73%)</td></tr>
<tr><td>Ex-Dividend Date</td><td>Aug 07, 2020</td></tr>
<tr><td>1y Target Est</td><td>119.88</td></tr>
</tbody></table>
</div>
</body></html>`

const sparsePage = `<html><body>
<div id="quote-header-info">
  <div class="D(ib) Fz(18px)">Vanguard Total Stock Market ETF (VTI)</div>
  <span class="Trsdu(0.3s) Fw(b) Fz(36px) Mb(-4px) D(ib)">176.20</span>
  <span class="Trsdu(0.3s) Fw(500)">-0.54 (-0.31%)</span>
</div>
<div id="quote-summary">
<table><tbody>
<tr><td>Previous Close</td><td>176.74</td></tr>
<tr><td>Forward Dividend &amp; Yield</td><td>N/A (N/A)</td></tr>
<tr><td>Market Cap</td><td>N/A</td></tr>
</tbody></table>
</div>
</body></html>`

func TestParseFullPage(t *testing.T) {
	page, err := Parse("AAPL", applePage)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if page.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", page.Symbol)
	}
	if page.Name != "Apple Inc." {
		t.Errorf("Name = %q, want Apple Inc.", page.Name)
	}

	floatChecks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"Close", page.Close, 115.97},
		{"Change", page.Change, 1.26},
		{"PercentChange", page.PercentChange, 1.10},
		{"PreviousClose", page.PreviousClose, 114.71},
		{"Open", page.Open, 114.86},
		{"BidPrice", page.BidPrice, 115.89},
		{"AskPrice", page.AskPrice, 115.98},
		{"Low", page.Low, 114.13},
		{"High", page.High, 116.55},
		{"FiftyTwoWeekLow", page.FiftyTwoWeekLow, 53.15},
		{"FiftyTwoWeekHigh", page.FiftyTwoWeekHigh, 137.98},
		{"BetaFiveYearMonthly", page.BetaFiveYearMonthly, 1.32},
		{"PERatioTTM", page.PERatioTTM, 35.26},
		{"EPSTTM", page.EPSTTM, 3.29},
		{"ForwardDividendYield", page.ForwardDividendYield, 0.82},
		{"ForwardDividendYieldPercent", page.ForwardDividendYieldPercent, 0.73},
		{"OneYearTargetEst", page.OneYearTargetEst, 119.88},
	}
	for _, check := range floatChecks {
		if check.got == nil {
			t.Errorf("%s is nil, want %v", check.name, check.want)
			continue
		}
		if *check.got != check.want {
			t.Errorf("%s = %v, want %v", check.name, *check.got, check.want)
		}
	}

	intChecks := []struct {
		name string
		got  *int64
		want int64
	}{
		{"BidSize", page.BidSize, 1100},
		{"AskSize", page.AskSize, 1300},
		{"Volume", page.Volume, 111850657},
		{"AverageVolume", page.AverageVolume, 173139104},
		{"MarketCap", page.MarketCap, 1966000000000},
	}
	for _, check := range intChecks {
		if check.got == nil {
			t.Errorf("%s is nil, want %v", check.name, check.want)
			continue
		}
		if *check.got != check.want {
			t.Errorf("%s = %v, want %v", check.name, *check.got, check.want)
		}
	}

	wantEarnings := time.Date(2020, time.October, 28, 0, 0, 0, 0, time.UTC)
	if page.EarningsDate == nil || !page.EarningsDate.Equal(wantEarnings) {
		t.Errorf("EarningsDate = %v, want %v", page.EarningsDate, wantEarnings)
	}
	wantExDiv := time.Date(2020, time.August, 7, 0, 0, 0, 0, time.UTC)
	if page.ExDividendDate == nil || !page.ExDividendDate.Equal(wantExDiv) {
		t.Errorf("ExDividendDate = %v, want %v", page.ExDividendDate, wantExDiv)
	}
}

func TestParseSparsePage(t *testing.T) {
	page, err := Parse("VTI", sparsePage)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if page.MarketCap != nil {
		t.Errorf("MarketCap = %v, want nil", *page.MarketCap)
	}
	if page.ForwardDividendYield != nil {
		t.Errorf("ForwardDividendYield = %v, want nil", *page.ForwardDividendYield)
	}
	if page.Volume != nil {
		t.Errorf("Volume = %v, want nil", *page.Volume)
	}
	if page.PreviousClose == nil || *page.PreviousClose != 176.74 {
		t.Errorf("PreviousClose = %v, want 176.74", page.PreviousClose)
	}
}

func TestParseMissingHeader(t *testing.T) {
	if _, err := Parse("AAPL", "<html><body><p>maintenance</p></body></html>"); err == nil {
		t.Fatal("expected error for page without quote header")
	}
}

func TestParseMissingDetailSection(t *testing.T) {
	headerOnly := `<html><body>
<div id="quote-header-info">
  <div class="D(ib) Fz(18px)">Apple Inc. (AAPL)</div>
  <span class="Trsdu(0.3s) Fw(b) Fz(36px) Mb(-4px) D(ib)">115.97</span>
  <span class="Trsdu(0.3s) Fw(500)">+1.00 (+0.87%)</span>
</div>
</body></html>`

	page, err := Parse("AAPL", headerOnly)
	if !fetcher.IsNotFound(err) {
		t.Fatalf("err = %v, want not-found for page without detail tables", err)
	}
	if page != nil {
		t.Errorf("page = %+v, want nil", page)
	}
}

func TestGroupSortSymbolsConcat(t *testing.T) {
	group := &SummaryPageGroup{}
	group.Append(&SummaryPage{Symbol: "MSFT"})
	group.Append(&SummaryPage{Symbol: "AAPL"})

	group.Sort()
	if got := group.Symbols(); !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("Symbols after Sort = %v", got)
	}

	other := &SummaryPageGroup{Pages: []*SummaryPage{{Symbol: "GOOG"}}}
	combined := group.Concat(other)
	if combined.Len() != 3 {
		t.Errorf("Concat Len = %d, want 3", combined.Len())
	}
	if group.Len() != 2 || other.Len() != 1 {
		t.Error("Concat mutated its operands")
	}
}

func TestGroupTable(t *testing.T) {
	closePrice := 115.97
	volume := int64(1000)
	group := &SummaryPageGroup{Pages: []*SummaryPage{
		{Symbol: "AAPL", Name: "Apple Inc.", Close: &closePrice, Volume: &volume},
	}}

	rows := group.Table()
	if len(rows) != 2 {
		t.Fatalf("Table rows = %d, want 2", len(rows))
	}
	want := []string{"AAPL", "Apple Inc.", "115.97", "-", "-", "1000", "-"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("Table row = %v, want %v", rows[1], want)
	}
}

func TestGetOne(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "AAPL") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(applePage))
	}))
	defer server.Close()

	f := NewFetcher(fetcher.NewClient(server.URL, 5*time.Second, ""))

	page, err := f.GetOne(context.Background(), "apple", GetOptions{
		Resolver: testutil.NewMockResolver(map[string]string{"apple": "AAPL"}),
	})
	if err != nil {
		t.Fatalf("GetOne returned error: %v", err)
	}
	if page.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want resolved AAPL", page.Symbol)
	}

	if _, err := f.GetOne(context.Background(), "MISSING", GetOptions{}); !fetcher.IsNotFound(err) {
		t.Errorf("err = %v, want not-found without NotFoundOK", err)
	}

	page, err = f.GetOne(context.Background(), "MISSING", GetOptions{NotFoundOK: true})
	if err != nil {
		t.Fatalf("GetOne returned error: %v", err)
	}
	if page != nil {
		t.Errorf("page = %+v, want nil under NotFoundOK", page)
	}
}

func TestGetMultiple(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "MISSING") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(applePage))
	}))
	defer server.Close()

	f := NewFetcher(fetcher.NewClient(server.URL, 5*time.Second, ""))
	c := coordinator.New(nil, coordinator.Options{Workers: 4, PageNotFoundOK: true})

	group, err := f.GetMultiple(context.Background(), c, []string{"AAPL", "MSFT", "AAPL", "MISSING"})
	if err != nil {
		t.Fatalf("GetMultiple returned error: %v", err)
	}
	if group.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate collapsed, missing dropped)", group.Len())
	}

	group.Sort()
	if got := group.Symbols(); !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("Symbols = %v", got)
	}
}
