// Package portfolio holds the persisted domain types.
package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a named account such as an RRSP or TFSA. Cash is supplied at
// rebalance time and is not part of it.
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Holding is one symbol's position within a portfolio.
//
// LastPrice and LastPriceTimestamp cache the most recent resolved quote. They
// are overwritten whenever a fresh quote arrives and never cleared.
// TargetPercentage is the last target the user submitted, on a 0-100 scale.
type Holding struct {
	ID                 string              `json:"id"`
	PortfolioID        string              `json:"portfolio_id"`
	Symbol             string              `json:"symbol"`
	Units              decimal.Decimal     `json:"units"`
	TargetPercentage   decimal.Decimal     `json:"target_percentage"`
	LastPrice          decimal.NullDecimal `json:"last_price"`
	LastPriceTimestamp string              `json:"last_price_timestamp,omitempty"`
}

// CachedPrice returns the cached price, or zero when the holding was never priced.
func (h Holding) CachedPrice() decimal.Decimal {
	if !h.LastPrice.Valid {
		return decimal.Zero
	}
	return h.LastPrice.Decimal
}
