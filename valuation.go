package tracker

import (
	"sort"
	"time"
)

// Holding is one position enriched with its market valuation. When no live
// price could be fetched the position is valued at its average cost, the
// unrealized gain reads zero and Live is false.
type Holding struct {
	Position
	Price       Money
	MarketValue Money
	Gain        Money // unrealized, MarketValue - CostBasis
	GainPercent float64
	DayChange   Money // day change for the whole row
	Live        bool
	AsOf        time.Time
}

// ValuationReport is the point-in-time value of the whole book: every holding
// priced, plus the cash balances, totaled per currency. Positions in different
// currencies are never summed together.
type ValuationReport struct {
	Date     Date
	Holdings []Holding
	Cash     []Money // one balance per currency, sorted
	Totals   []CurrencyTotal
}

// CurrencyTotal aggregates all holdings and cash of one currency.
type CurrencyTotal struct {
	Currency    string
	MarketValue Money // holdings only
	CostBasis   Money
	Gain        Money
	Cash        Money
	Total       Money // holdings + cash
	Stale       bool  // true if any holding in this currency is not live
}

// Valuate prices every position of the book with the given provider and
// returns the report. Provider failures degrade the affected rows, they never
// fail the report.
func Valuate(book *Book, provider QuoteProvider) *ValuationReport {
	report := &ValuationReport{Date: Today()}

	for pos := range book.Positions() {
		h := Holding{Position: pos}
		cur := pos.Currency()

		quote, err := provider.Quote(pos.Security, pos.Segment)
		if err == nil {
			h.Price = quote.Price
			h.Live = true
			h.AsOf = quote.AsOf
			h.DayChange = quote.Change.Mul(pos.Quantity)
		} else {
			h.Price = pos.AvgCost
			h.DayChange = M(0, cur)
		}

		h.MarketValue = h.Price.Mul(pos.Quantity)
		h.Gain = h.MarketValue.Sub(pos.CostBasis())
		if basis := pos.CostBasis(); !basis.IsZero() {
			gain, _ := h.Gain.Decimal().Div(basis.Decimal()).Float64()
			h.GainPercent = gain * 100
		}

		report.Holdings = append(report.Holdings, h)
	}

	totals := make(map[string]*CurrencyTotal)
	total := func(cur string) *CurrencyTotal {
		t, ok := totals[cur]
		if !ok {
			t = &CurrencyTotal{
				Currency:    cur,
				MarketValue: M(0, cur),
				CostBasis:   M(0, cur),
				Gain:        M(0, cur),
				Cash:        M(0, cur),
				Total:       M(0, cur),
			}
			totals[cur] = t
		}
		return t
	}

	for _, h := range report.Holdings {
		t := total(h.Currency())
		t.MarketValue = t.MarketValue.Add(h.MarketValue)
		t.CostBasis = t.CostBasis.Add(h.CostBasis())
		t.Gain = t.Gain.Add(h.Gain)
		if !h.Live {
			t.Stale = true
		}
	}
	for cur := range book.CashBalances().Currencies() {
		balance := book.CashBalance(cur)
		report.Cash = append(report.Cash, balance)
		total(cur).Cash = balance
	}
	for _, t := range totals {
		t.Total = t.MarketValue.Add(t.Cash)
		report.Totals = append(report.Totals, *t)
	}
	sort.Slice(report.Totals, func(i, j int) bool {
		return report.Totals[i].Currency < report.Totals[j].Currency
	})

	return report
}
