package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"rebalancer/internal/provider"
)

type quotesCmd struct{}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "resolve the latest price of symbols" }
func (*quotesCmd) Usage() string {
	return `fetch quotes SYM...

  Resolves each symbol through the provider chain and prints its price,
  timestamp and source. Unpriced symbols are listed as unresolved.
`
}

func (*quotesCmd) SetFlags(*flag.FlagSet) {}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := provider.NormalizeSymbols(f.Args())
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	quotes := e.sources.Resolver(e.log).Resolve(ctx, symbols)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tTIMESTAMP\tSOURCE")
	for _, sym := range symbols {
		q, ok := quotes[sym]
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\tunresolved\n", sym)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sym, q.Price, q.Timestamp, q.Source)
	}
	if err := w.Flush(); err != nil {
		return subcommands.ExitFailure
	}

	if len(quotes) == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "report whether symbols are quotable" }
func (*checkCmd) Usage() string {
	return `fetch check SYM...

  Asks the providers whether they know each symbol. A provider outage
  reports the symbol as quotable.
`
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := provider.NormalizeSymbols(f.Args())
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	v := e.sources.Validator(e.log)
	for _, sym := range symbols {
		answer := "no"
		if v.IsQuotable(ctx, sym) {
			answer = "yes"
		}
		fmt.Printf("%s\t%s\n", sym, answer)
	}
	return subcommands.ExitSuccess
}
