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

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	id   int64
	kind string
	tradeFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a recorded trade by id" }
func (*editCmd) Usage() string {
	return `ivt edit -id <id> [-k <kind>] [-s <security>] [-q <quantity>] [-p <price>] [-m <segment>] [-d <date>] [-n <name>] [-c <commission>]

  Replaces fields of a recorded trade. Only the flags given on the command
  line change; the rest keep their stored value. The old trade's effect is
  fully reversed and the new one applied, so positions and cash stay exact.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Id of the trade to edit.")
	f.StringVar(&c.kind, "k", "", "Trade kind: buy or sell.")
	c.setFlags(f)
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		return subcommands.ExitFailure
	}

	old, ok := book.Get(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no trade with id %d\n", c.id)
		return subcommands.ExitFailure
	}

	// Start from the stored trade and overwrite only the flags that were
	// explicitly set on the command line.
	updated := old
	var parseErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "k":
			kind, err := tracker.ParseKind(c.kind)
			if err != nil {
				parseErr = err
				return
			}
			updated.Kind = kind
		case "d":
			day, err := tracker.ParseDate(c.date)
			if err != nil {
				parseErr = fmt.Errorf("invalid date: %w", err)
				return
			}
			updated.Date = day
		case "s":
			updated.Security = c.security
		case "n":
			updated.Name = c.name
		case "m":
			segment, err := tracker.ParseMarketSegment(c.segment)
			if err != nil {
				parseErr = err
				return
			}
			updated.Segment = segment
			// re-denominate kept amounts in the new segment currency
			updated.UnitPrice = tracker.M(updated.UnitPrice.Decimal(), segment.Currency())
			updated.Commission = tracker.M(updated.Commission.Decimal(), segment.Currency())
		case "p":
			updated.UnitPrice = tracker.M(c.price, updated.Segment.Currency())
		case "q":
			updated.Quantity = tracker.Q(c.quantity)
		case "c":
			updated.Commission = tracker.M(c.commission, updated.Segment.Currency())
		}
	})
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
		return subcommands.ExitUsageError
	}

	if err := book.Update(c.id, updated); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating trade: %v\n", err)
		return subcommands.ExitFailure
	}

	saved, _ := book.Get(c.id)
	fmt.Printf("Updated trade %d: %s\n", c.id, renderer.Describe(saved))
	return subcommands.ExitSuccess
}
