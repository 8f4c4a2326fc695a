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

// tradeFlags holds the flags shared by the buy and sell subcommands.
type tradeFlags struct {
	date       string
	security   string
	name       string
	segment    string
	price      float64
	quantity   int64
	commission float64
}

func (c *tradeFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", tracker.Today().String(), "Trade date. Defaults to today.")
	f.StringVar(&c.security, "s", "", "Security code, e.g. 600519 or AAPL.")
	f.StringVar(&c.name, "n", "", "Display name for the security.")
	f.StringVar(&c.segment, "m", tracker.AShare.String(), "Market segment: a-share, hk-stock, us-stock or fund.")
	f.Float64Var(&c.price, "p", 0, "Price per share, in the segment currency.")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares, a positive whole number.")
	f.Float64Var(&c.commission, "c", 0, "Broker commission, in the segment currency.")
}

// transaction builds the unsaved trade from the flags.
func (c *tradeFlags) transaction(kind tracker.Kind) (tracker.Transaction, error) {
	day, err := tracker.ParseDate(c.date)
	if err != nil {
		return tracker.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}
	segment, err := tracker.ParseMarketSegment(c.segment)
	if err != nil {
		return tracker.Transaction{}, err
	}
	return tracker.NewTransaction(day, kind, c.security, c.name, segment, c.price, c.quantity, c.commission), nil
}

// record adds the trade to the book and prints a confirmation.
func record(kind tracker.Kind, c *tradeFlags) subcommands.ExitStatus {
	tx, err := c.transaction(kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		return subcommands.ExitFailure
	}

	id, err := book.Add(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording trade: %v\n", err)
		return subcommands.ExitFailure
	}

	saved, _ := book.Get(id)
	fmt.Printf("%s (id %d)\n", renderer.Describe(saved), id)
	return subcommands.ExitSuccess
}

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy trade" }
func (*buyCmd) Usage() string {
	return `ivt buy -s <security> -q <quantity> -p <price> [-m <segment>] [-d <date>] [-n <name>] [-c <commission>]

  Records a buy: the position quantity and average cost are updated, and the
  cash balance of the segment currency is debited by amount plus commission.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(tracker.Buy, &c.tradeFlags)
}
