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

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the book with live quotes" }
func (*valueCmd) Usage() string {
	return `ivt value

  Prices every position with live quotes and displays market value, gain and
  day change, with totals per currency. A position whose quote cannot be
  fetched is valued at its average cost and flagged as stale.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		return subcommands.ExitFailure
	}

	report := tracker.Valuate(book, tracker.DefaultProvider())
	printMarkdown(renderer.Valuation(report))
	return subcommands.ExitSuccess
}
