// Command fetch resolves quotes, checks symbols and plans ad-hoc rebalances
// against the configured price providers without touching storage.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&quotesCmd{}, "prices")
	commander.Register(&checkCmd{}, "prices")
	commander.Register(&rawCmd{}, "prices")
	commander.Register(&rebalanceCmd{}, "portfolio")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
