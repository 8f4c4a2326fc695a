package renderer

import "github.com/etnz/tracker"

// Positions renders the current holdings as a markdown table.
func Positions(positions []tracker.Position) string {
	return renderTemplate("positions", "positions.md", nil, positions)
}

// Cash renders the per-currency cash balances as a markdown table.
func Cash(balances []tracker.Money) string {
	return renderTemplate("cash", "cash.md", nil, balances)
}
