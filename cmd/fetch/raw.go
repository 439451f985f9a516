package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"rebalancer/internal/provider"
)

// rawCmd dumps upstream responses as-is, for debugging provider parsing.
type rawCmd struct {
	provider string
	out      string
}

func (*rawCmd) Name() string     { return "raw" }
func (*rawCmd) Synopsis() string { return "dump a provider's raw JSON response" }
func (*rawCmd) Usage() string {
	return `fetch raw [-provider twelvedata|yahoo] [-out FILE] SYM...

  Twelve Data is asked once for the whole batch; Yahoo once per symbol.
`
}

func (c *rawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "yahoo", "provider to query: twelvedata or yahoo")
	f.StringVar(&c.out, "out", "", "write the response to this file instead of stdout")
}

func (c *rawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var bodies [][]byte
	switch strings.ToLower(c.provider) {
	case "twelvedata":
		if e.sources.TwelveData == nil {
			fmt.Fprintln(os.Stderr, "Error: twelvedata api key is not configured")
			return subcommands.ExitFailure
		}
		b, err := e.sources.TwelveData.RawQuote(ctx, symbols)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching from twelvedata: %v\n", err)
			return subcommands.ExitFailure
		}
		bodies = append(bodies, b)

	case "yahoo":
		for _, sym := range symbols {
			b, err := e.sources.Yahoo.Raw(ctx, sym)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error fetching %s from yahoo: %v\n", sym, err)
				return subcommands.ExitFailure
			}
			bodies = append(bodies, b)
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown provider %q\n", c.provider)
		return subcommands.ExitUsageError
	}

	var buf bytes.Buffer
	for _, b := range bodies {
		if err := json.Indent(&buf, b, "", "  "); err != nil {
			// not JSON; keep it verbatim
			buf.Write(b)
		}
		buf.WriteByte('\n')
	}

	if c.out == "" {
		_, _ = os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.out, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	e.log.Info().Str("file", c.out).Int("bytes", buf.Len()).Msg("raw response written")
	return subcommands.ExitSuccess
}
