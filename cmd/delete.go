package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a recorded trade by id" }
func (*deleteCmd) Usage() string {
	return `ivt delete -id <id>

  Removes a trade from the log and reverses its effect on the position table
  and cash balances.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Id of the trade to delete.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if err := book.Delete(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting trade: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted trade %d: %s\n", c.id, renderer.Describe(old))
	return subcommands.ExitSuccess
}
