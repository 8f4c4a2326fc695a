package renderer

import (
	"fmt"

	"github.com/etnz/tracker"
)

// Transactions renders the trade log as a markdown table.
func Transactions(txs []tracker.Transaction) string {
	return renderTemplate("transactions", "transactions.md", nil, txs)
}

// Describe renders a one-line human summary of a trade, used by the CLI to
// confirm mutations.
func Describe(tx tracker.Transaction) string {
	switch tx.Kind {
	case tracker.Buy:
		return fmt.Sprintf("Bought %s of %s (%s) for %s", tx.Quantity, tx.Security, tx.Segment, tx.GrossCost())
	case tracker.Sell:
		return fmt.Sprintf("Sold %s of %s (%s) for %s", tx.Quantity, tx.Security, tx.Segment, tx.NetProceeds())
	default:
		return tx.Kind.String()
	}
}
