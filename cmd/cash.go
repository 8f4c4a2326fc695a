package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// cashCmd holds the flags for the 'cash' subcommand.
type cashCmd struct{}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "display cash balances per currency" }
func (*cashCmd) Usage() string {
	return `ivt cash

  Displays the cash balance of every currency the book has traded in. A
  negative balance means more was spent than deposited through sells.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger := book.CashBalances()
	var balances []tracker.Money
	for cur := range ledger.Currencies() {
		balances = append(balances, ledger.Balance(cur))
	}

	printMarkdown(renderer.Cash(balances))
	return subcommands.ExitSuccess
}
