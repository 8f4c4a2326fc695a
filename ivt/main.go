package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/tracker/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion hook: when invoked by the shell completion machinery
	// this prints the candidates and exits, otherwise it returns immediately.
	tradeFlags := map[string]complete.Predictor{
		"d": predict.Nothing,
		"s": predict.Nothing,
		"n": predict.Nothing,
		"m": predict.Set{"a-share", "hk-stock", "us-stock", "fund"},
		"p": predict.Nothing,
		"q": predict.Nothing,
		"c": predict.Nothing,
	}
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":     {Flags: tradeFlags},
			"sell":    {Flags: tradeFlags},
			"edit":    {Flags: tradeFlags},
			"delete":  {},
			"tx":      {},
			"holding": {},
			"cash":    {},
			"value":   {},
			"resync":  {},
			"topic":   {},
		},
		Flags: map[string]complete.Predictor{
			"dir": predict.Dirs("*"),
		},
	}
	completion.Complete("ivt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
