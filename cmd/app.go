// Package cmd implements the CLI application to manage the investment book.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tracker"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")

	c.Register(&txCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&cashCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")

	c.Register(&resyncCmd{}, "maintenance")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("dir", defaultDir(), "Path to the data directory holding the book files")

func defaultDir() string {
	if dir := os.Getenv("TRACKER_DIR"); dir != "" {
		return dir
	}
	return ".tracker"
}

// OpenBook is the central function to open the book from the app data directory.
func OpenBook() (*tracker.Book, error) {
	return tracker.Open(*dataDir)
}

// printMarkdown renders a markdown report to the terminal. When the fancy
// renderer cannot run (dumb terminals, pipes) the raw markdown is printed.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(md)
}
