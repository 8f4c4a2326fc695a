package tracker

import (
	"errors"
	"testing"
)

// pickyProvider quotes a single security and fails on everything else.
type pickyProvider struct {
	security string
	quote    Quote
}

func (p *pickyProvider) Quote(security string, segment MarketSegment) (Quote, error) {
	if security != p.security {
		return Quote{}, errors.New("no quote")
	}
	return p.quote, nil
}

func TestValuate(t *testing.T) {
	b := NewBook()
	mustAdd(t, b, aBuy("2025-03-03", "600519", AShare, 1700, 100, 0))
	mustAdd(t, b, aBuy("2025-03-04", "AAPL", USStock, 180, 50, 0))

	provider := &pickyProvider{
		security: "600519",
		quote:    Quote{Security: "600519", Segment: AShare, Price: CNY(1800), Change: CNY(5)},
	}

	report := Valuate(b, provider)
	if len(report.Holdings) != 2 {
		t.Fatalf("report has %d holdings, want 2", len(report.Holdings))
	}

	// holdings are sorted by security: 600519 first
	live := report.Holdings[0]
	if !live.Live {
		t.Error("600519 should be live")
	}
	if !live.MarketValue.Equal(CNY(180000)) {
		t.Errorf("600519 market value = %s, want 180000", live.MarketValue.Decimal())
	}
	if !live.Gain.Equal(CNY(10000)) {
		t.Errorf("600519 gain = %s, want 10000", live.Gain.Decimal())
	}
	if !live.DayChange.Equal(CNY(500)) {
		t.Errorf("600519 day change = %s, want 500", live.DayChange.Decimal())
	}

	// the unquoted position degrades to its average cost
	stale := report.Holdings[1]
	if stale.Live {
		t.Error("AAPL should be stale")
	}
	if !stale.Price.Equal(USD(180)) {
		t.Errorf("AAPL stale price = %s, want avg cost 180", stale.Price.Decimal())
	}
	if !stale.MarketValue.Equal(USD(9000)) {
		t.Errorf("AAPL market value = %s, want 9000", stale.MarketValue.Decimal())
	}
	if !stale.Gain.IsZero() {
		t.Errorf("AAPL gain = %s, want zero", stale.Gain.Decimal())
	}
}

func TestValuateTotalsPerCurrency(t *testing.T) {
	b := NewBook()
	mustAdd(t, b, aBuy("2025-03-03", "600519", AShare, 1700, 100, 0))
	mustAdd(t, b, aBuy("2025-03-04", "AAPL", USStock, 180, 50, 0))

	provider := &pickyProvider{
		security: "600519",
		quote:    Quote{Security: "600519", Segment: AShare, Price: CNY(1800)},
	}

	report := Valuate(b, provider)
	if len(report.Totals) != 2 {
		t.Fatalf("report has %d totals, want 2 (one per currency)", len(report.Totals))
	}

	cny := report.Totals[0]
	if cny.Currency != "CNY" {
		t.Fatalf("totals not sorted by currency: %q first", cny.Currency)
	}
	if !cny.MarketValue.Equal(CNY(180000)) || !cny.CostBasis.Equal(CNY(170000)) {
		t.Errorf("CNY totals = %s/%s, want 180000/170000", cny.MarketValue.Decimal(), cny.CostBasis.Decimal())
	}
	if !cny.Cash.Equal(CNY(-170000)) {
		t.Errorf("CNY cash = %s, want -170000", cny.Cash.Decimal())
	}
	if !cny.Total.Equal(CNY(10000)) {
		t.Errorf("CNY total = %s, want 10000", cny.Total.Decimal())
	}
	if cny.Stale {
		t.Error("CNY total should be live: its only holding was quoted")
	}

	usd := report.Totals[1]
	if !usd.Stale {
		t.Error("USD total should be stale: AAPL had no quote")
	}
	if !usd.Total.Equal(USD(0)) { // 9000 holdings - 9000 spent
		t.Errorf("USD total = %s, want 0", usd.Total.Decimal())
	}
}

func TestValuateNeverTouchesTheBook(t *testing.T) {
	b := NewBook()
	mustAdd(t, b, aBuy("2025-03-03", "600519", AShare, 1700, 100, 0))

	Valuate(b, &pickyProvider{}) // provider fails on everything

	checkPosition(t, b, "600519", AShare, 100, 1700)
	checkCash(t, b, "CNY", -170000)
}
