package twelvedataadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"rebalancer/internal/provider"
	"rebalancer/internal/provider/twelvedata"
)

// QuoteClient is the slice of the Twelve Data API the adapter needs.
//
//go:generate mockgen -package=twelvedataadapter_test -destination=mock_quote_client_test.go -source=adapter.go QuoteClient
type QuoteClient interface {
	GetQuote(ctx context.Context, symbol string, opts ...twelvedata.TwelveDataAPIClientOption) (twelvedata.Quote, error)
	GetQuotes(ctx context.Context, symbols []string, opts ...twelvedata.TwelveDataAPIClientOption) (map[string]twelvedata.Quote, error)
}

type Config struct {
	Name string // display name, default: TwelveData
}

// Adapter exposes the Twelve Data client as a provider.Provider and provider.Checker.
type Adapter struct {
	cfg    Config
	client QuoteClient
}

func New(cfg Config, client QuoteClient) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "TwelveData"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// Fetch prices all symbols with one batch request. Entries that came back as
// error objects, or without a usable close, are left out of the result.
func (a *Adapter) Fetch(ctx context.Context, symbols []string) (map[string]provider.Quote, error) {
	if len(symbols) == 0 {
		return map[string]provider.Quote{}, nil
	}

	items, err := a.client.GetQuotes(ctx, symbols)
	if err != nil {
		var apiErr *twelvedata.APIError
		// a single unknown symbol is reported as an error object; that is a miss, not a failure
		if len(symbols) == 1 && errors.As(err, &apiErr) {
			return map[string]provider.Quote{}, nil
		}
		return nil, err
	}

	out := make(map[string]provider.Quote, len(items))
	for _, sym := range symbols {
		it, ok := items[sym]
		if !ok || !it.Valid() {
			continue
		}
		price, ok := parsePrice(it.Close)
		if !ok {
			continue
		}
		out[sym] = provider.Quote{
			Symbol:    sym,
			Price:     price,
			Timestamp: it.Datetime,
			Source:    a.cfg.Name,
		}
	}
	return out, nil
}

// Check reports whether Twelve Data knows the symbol: valid iff the response
// carries no error code, or code 200.
func (a *Adapter) Check(ctx context.Context, symbol string) (bool, error) {
	q, err := a.client.GetQuote(ctx, symbol)
	if err != nil {
		return false, fmt.Errorf("%s check %s: %w", a.cfg.Name, symbol, err)
	}
	return q.Valid(), nil
}

func parsePrice(n twelvedata.Number) (decimal.Decimal, bool) {
	if n == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
