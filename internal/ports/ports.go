// Package ports declares what the application service needs from the outside:
// price lookups, symbol validation and persistence.
package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"rebalancer/internal/portfolio"
	"rebalancer/internal/provider"
)

//go:generate mockgen -package=portstest -destination=portstest/mock_ports.go -source=ports.go

// PriceResolver returns quotes for the symbols some provider could price.
type PriceResolver interface {
	Resolve(ctx context.Context, symbols []string) map[string]provider.Quote
}

// SymbolValidator reports whether a symbol can be quoted.
type SymbolValidator interface {
	IsQuotable(ctx context.Context, symbol string) bool
}

// CachedPrice is the last resolved quote stored for a holding.
type CachedPrice struct {
	Price     decimal.Decimal
	Timestamp string
}

// HoldingCache reads and writes the per-holding cache fields of one portfolio.
type HoldingCache interface {
	// ReadPrice returns false when the symbol was never priced.
	ReadPrice(ctx context.Context, symbol string) (CachedPrice, bool, error)
	WritePrice(ctx context.Context, symbol string, price decimal.Decimal, timestamp string) error
	// ReadTargetPercentage returns zero when no target was ever set.
	ReadTargetPercentage(ctx context.Context, symbol string) (decimal.Decimal, error)
	WriteTargetPercentage(ctx context.Context, symbol string, pct decimal.Decimal) error
}

// PortfolioRepository persists portfolios and their holdings.
type PortfolioRepository interface {
	CreatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error)
	ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (portfolio.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error

	ListHoldings(ctx context.Context, portfolioID string) ([]portfolio.Holding, error)
	AddHolding(ctx context.Context, h portfolio.Holding) (portfolio.Holding, error)
	UpdateUnits(ctx context.Context, id string, units decimal.Decimal) (portfolio.Holding, error)
	DeleteHolding(ctx context.Context, id string) error

	// HoldingCache scopes the cache fields to one portfolio.
	HoldingCache(portfolioID string) HoldingCache
}
