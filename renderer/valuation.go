package renderer

import "github.com/etnz/tracker"

// Valuation renders a full valuation report to a markdown string.
func Valuation(r *tracker.ValuationReport) string {
	partials := map[string]string{
		"valuation_holdings": "valuation_holdings.md",
		"valuation_cash":     "valuation_cash.md",
		"valuation_totals":   "valuation_totals.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, r)
}
