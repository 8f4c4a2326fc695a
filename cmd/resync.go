package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// resyncCmd holds the flags for the 'resync' subcommand.
type resyncCmd struct{}

func (*resyncCmd) Name() string     { return "resync" }
func (*resyncCmd) Synopsis() string { return "rebuild positions and cash from the trade log" }
func (*resyncCmd) Usage() string {
	return `ivt resync

  Discards the derived position table and cash balances and rebuilds them by
  replaying every trade in creation order. Use it after editing the ledger
  file by hand, or to verify the derived files are consistent.
`
}

func (c *resyncCmd) SetFlags(f *flag.FlagSet) {}

func (c *resyncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		return subcommands.ExitFailure
	}

	count := 0
	for range book.Transactions() {
		count++
	}

	if err := book.Resync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resyncing book: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Resynchronized %d trades.\n", count)
	return subcommands.ExitSuccess
}
