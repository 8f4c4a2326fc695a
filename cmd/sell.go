package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker"
	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell trade" }
func (*sellCmd) Usage() string {
	return `ivt sell -s <security> -q <quantity> -p <price> [-m <segment>] [-d <date>] [-n <name>] [-c <commission>]

  Records a sell: the position quantity is reduced at unchanged average cost,
  and the cash balance of the segment currency is credited by amount minus
  commission. Selling more than the position holds is rejected.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(tracker.Sell, &c.tradeFlags)
}
