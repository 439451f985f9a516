package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"rebalancer/internal/ports"
)

// holdingCache reads and writes the cache columns of one portfolio's holdings,
// keyed by symbol.
type holdingCache struct {
	db          *sql.DB
	portfolioID string
}

// HoldingCache scopes the holding cache to one portfolio.
func (s *Store) HoldingCache(portfolioID string) ports.HoldingCache {
	return &holdingCache{db: s.db, portfolioID: portfolioID}
}

func (c *holdingCache) ReadPrice(ctx context.Context, symbol string) (ports.CachedPrice, bool, error) {
	var (
		price decimal.NullDecimal
		ts    string
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT last_price, last_price_timestamp FROM holdings WHERE portfolio_id = ? AND symbol = ?`,
		c.portfolioID, symbol,
	).Scan(&price, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.CachedPrice{}, false, fmt.Errorf("holding %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return ports.CachedPrice{}, false, fmt.Errorf("failed to read cached price: %w", err)
	}
	if !price.Valid {
		return ports.CachedPrice{}, false, nil
	}
	return ports.CachedPrice{Price: price.Decimal, Timestamp: ts}, true, nil
}

func (c *holdingCache) WritePrice(ctx context.Context, symbol string, price decimal.Decimal, timestamp string) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE holdings SET last_price = ?, last_price_timestamp = ? WHERE portfolio_id = ? AND symbol = ?`,
		price, timestamp, c.portfolioID, symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to write cached price: %w", err)
	}
	return expectOne(res, "holding", symbol)
}

func (c *holdingCache) ReadTargetPercentage(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var pct decimal.Decimal
	err := c.db.QueryRowContext(ctx,
		`SELECT target_percentage FROM holdings WHERE portfolio_id = ? AND symbol = ?`,
		c.portfolioID, symbol,
	).Scan(&pct)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("holding %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read target percentage: %w", err)
	}
	return pct, nil
}

func (c *holdingCache) WriteTargetPercentage(ctx context.Context, symbol string, pct decimal.Decimal) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE holdings SET target_percentage = ? WHERE portfolio_id = ? AND symbol = ?`,
		pct, c.portfolioID, symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to write target percentage: %w", err)
	}
	return expectOne(res, "holding", symbol)
}
