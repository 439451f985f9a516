package provider

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is the normalized shape returned by all providers.
// Timestamp is whatever the provider reported for the price and may be empty.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp string          `json:"timestamp,omitempty"`
	Source    string          `json:"source"`
}

//go:generate mockgen -package=providertest -destination=providertest/mock_provider.go -source=provider.go Provider,Checker

// Provider prices a set of symbols with as few upstream calls as it can.
// Symbols the provider did not price are absent from the returned map; they are
// never reported as per-symbol errors. An error means the whole call failed.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// Checker reports whether a provider knows a symbol.
// (false, nil) is a clean "not found"; a non-nil error means the check could not be made.
type Checker interface {
	Name() string
	Check(ctx context.Context, symbol string) (bool, error)
}

// NormalizeSymbol upper-cases and trims a ticker at the system boundary.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes symbols, dropping blanks and duplicates while keeping
// first-seen order.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
