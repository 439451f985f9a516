package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"rebalancer/internal/portfolio"
	"rebalancer/internal/provider"
	"rebalancer/internal/rebalance"
)

// rebalanceCmd plans a rebalance of holdings given on the command line.
type rebalanceCmd struct {
	cash     string
	currency string
	offline  bool
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "plan the trades that reach target allocations" }
func (*rebalanceCmd) Usage() string {
	return `fetch rebalance [-cash N] [-c CUR] [-offline] SYM=UNITS:PCT[:LASTPRICE]...

  Each argument is a holding: units held, target percentage and optionally a
  last known price used when no provider can price the symbol.

  Example:
    fetch rebalance -cash 5000 QQQM=50:50 BRK.B=14:25 VOO=52:25:105.75
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cash, "cash", "0", "cash to invest alongside the holdings")
	f.StringVar(&c.currency, "c", "", "display currency (default from config)")
	f.BoolVar(&c.offline, "offline", false, "do not query providers; use last prices only")
}

func (c *rebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cash, err := decimal.NewFromString(c.cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cash %q: %v\n", c.cash, err)
		return subcommands.ExitUsageError
	}
	holdings, targets, err := parseHoldings(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := rebalance.Validate(targets, cash); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	currency := c.currency
	if currency == "" {
		currency = e.cfg.Display.Currency
	}

	var quotes map[string]provider.Quote
	if !c.offline {
		symbols := make([]string, 0, len(holdings))
		for _, h := range holdings {
			symbols = append(symbols, h.Symbol)
		}
		quotes = e.sources.Resolver(e.log).Resolve(ctx, symbols)
	}

	res := rebalance.Compute(holdings, quotes, targets, cash)
	if err := printPlan(os.Stdout, res, currency); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseHoldings parses SYM=UNITS:PCT[:LASTPRICE] arguments.
func parseHoldings(args []string) ([]portfolio.Holding, map[string]decimal.Decimal, error) {
	if len(args) == 0 {
		return nil, nil, errors.New("at least one holding is required")
	}
	holdings := make([]portfolio.Holding, 0, len(args))
	targets := make(map[string]decimal.Decimal, len(args))
	for _, arg := range args {
		h, err := parseHolding(arg)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := targets[h.Symbol]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate symbol", h.Symbol)
		}
		targets[h.Symbol] = h.TargetPercentage
		holdings = append(holdings, h)
	}
	return holdings, targets, nil
}

func parseHolding(arg string) (portfolio.Holding, error) {
	sym, fields, ok := strings.Cut(arg, "=")
	sym = provider.NormalizeSymbol(sym)
	if !ok || sym == "" {
		return portfolio.Holding{}, fmt.Errorf("%q: expected SYM=UNITS:PCT[:LASTPRICE]", arg)
	}
	parts := strings.Split(fields, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return portfolio.Holding{}, fmt.Errorf("%q: expected SYM=UNITS:PCT[:LASTPRICE]", arg)
	}

	units, err := decimal.NewFromString(parts[0])
	if err != nil || units.IsNegative() {
		return portfolio.Holding{}, fmt.Errorf("%s: invalid units %q", sym, parts[0])
	}
	pct, err := decimal.NewFromString(parts[1])
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("%s: invalid percentage %q", sym, parts[1])
	}

	h := portfolio.Holding{ID: sym, Symbol: sym, Units: units, TargetPercentage: pct}
	if len(parts) == 3 {
		last, err := decimal.NewFromString(parts[2])
		if err != nil || last.IsNegative() {
			return portfolio.Holding{}, fmt.Errorf("%s: invalid last price %q", sym, parts[2])
		}
		h.LastPrice = decimal.NewNullDecimal(last)
		h.LastPriceTimestamp = "command line"
	}
	return h, nil
}

func printPlan(out io.Writer, res rebalance.Result, currency string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tUNITS\tVALUE\tTARGET %\tTARGET VALUE\tACTION\tUNITS\t")
	for _, a := range res.Actions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			a.Symbol,
			formatMoney(a.Price, currency),
			a.CurrentUnits,
			formatMoney(a.CurrentValue, currency),
			a.TargetPercentage,
			formatMoney(a.TargetValue, currency),
			a.Side,
			a.UnitsToChange.StringFixed(2),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, p := range res.Valuation.Holdings {
		if p.Price.IsZero() {
			fmt.Fprintf(out, "%s: no price available, left out of the plan\n", p.Symbol)
		}
	}
	_, err := fmt.Fprintf(out, "\nCash: %s  Total: %s\n", formatMoney(res.Cash, currency), formatMoney(res.TotalValue, currency))
	return err
}
