// Package rebalance values holdings and computes the trades that move them
// toward target allocations. Everything here is pure: persisting refreshed
// price caches and submitted targets is left to the caller.
package rebalance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"rebalancer/internal/portfolio"
	"rebalancer/internal/provider"
)

var (
	ErrNegativeCash     = errors.New("cash must not be negative")
	ErrTargetOutOfRange = errors.New("target percentage must be between 0 and 100")
)

// unitsPlaces is the precision of UnitsToChange.
const unitsPlaces = 2

var hundred = decimal.NewFromInt(100)

type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Priced is a holding with the price chosen for it and its current value.
// When Fresh is set the embedded Holding already carries the new quote in its
// cache fields and should be written back.
type Priced struct {
	portfolio.Holding
	Price          decimal.Decimal `json:"price"`
	PriceTimestamp string          `json:"price_timestamp,omitempty"`
	Fresh          bool            `json:"fresh"`
	Value          decimal.Decimal `json:"value"`
}

// Valuation is the priced portfolio without cash.
type Valuation struct {
	Holdings []Priced        `json:"holdings"`
	Total    decimal.Decimal `json:"total"`
}

// Refreshed returns the holdings whose cache was updated from a fresh quote.
func (v Valuation) Refreshed() []portfolio.Holding {
	out := make([]portfolio.Holding, 0, len(v.Holdings))
	for _, p := range v.Holdings {
		if p.Fresh {
			out = append(out, p.Holding)
		}
	}
	return out
}

// Action is one trade. UnitsToChange is a magnitude rounded to 2 places; the
// direction is in Side.
type Action struct {
	Symbol           string          `json:"symbol"`
	Price            decimal.Decimal `json:"price"`
	CurrentUnits     decimal.Decimal `json:"current_units"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	TargetPercentage decimal.Decimal `json:"target_percentage"`
	TargetValue      decimal.Decimal `json:"target_value"`
	UnitsToChange    decimal.Decimal `json:"units_to_change"`
	Side             Side            `json:"action"`
}

type Result struct {
	Actions    []Action        `json:"actions"`
	TotalValue decimal.Decimal `json:"total_value"`
	Cash       decimal.Decimal `json:"cash"`
	Valuation  Valuation       `json:"valuation"`
}

// Value picks a price for every holding and sums the holding values.
//
// A quote for the symbol wins and overwrites the holding's cached price and
// timestamp; otherwise the cached price is used, or zero if there is none.
func Value(holdings []portfolio.Holding, quotes map[string]provider.Quote) Valuation {
	v := Valuation{Holdings: make([]Priced, 0, len(holdings)), Total: decimal.Zero}
	for _, h := range holdings {
		p := Priced{Holding: h}
		if q, ok := quotes[h.Symbol]; ok {
			p.Price = q.Price
			p.PriceTimestamp = q.Timestamp
			p.Fresh = true
			p.LastPrice = decimal.NewNullDecimal(q.Price)
			p.LastPriceTimestamp = q.Timestamp
		} else {
			p.Price = h.CachedPrice()
			p.PriceTimestamp = h.LastPriceTimestamp
		}
		p.Value = p.Price.Mul(h.Units)
		v.Total = v.Total.Add(p.Value)
		v.Holdings = append(v.Holdings, p)
	}
	return v
}

// Compute values the holdings, adds cash, and returns one action per holding
// that has a price. targets is on a 0-100 scale and is not renormalized; a
// holding missing from it falls back to its stored TargetPercentage.
func Compute(holdings []portfolio.Holding, quotes map[string]provider.Quote, targets map[string]decimal.Decimal, cash decimal.Decimal) Result {
	v := Value(holdings, quotes)
	total := v.Total.Add(cash)

	res := Result{
		Actions:    make([]Action, 0, len(v.Holdings)),
		TotalValue: total,
		Cash:       cash,
		Valuation:  v,
	}
	for _, p := range v.Holdings {
		pct, ok := targets[p.Symbol]
		if !ok {
			pct = p.TargetPercentage
		}
		target := total.Mul(pct).Div(hundred)

		if !p.Price.IsPositive() {
			continue
		}
		units := target.Sub(p.Value).Div(p.Price)
		side := Sell
		if units.IsPositive() {
			side = Buy
		}
		res.Actions = append(res.Actions, Action{
			Symbol:           p.Symbol,
			Price:            p.Price,
			CurrentUnits:     p.Units,
			CurrentValue:     p.Value,
			TargetPercentage: pct,
			TargetValue:      target,
			UnitsToChange:    units.Abs().Round(unitsPlaces),
			Side:             side,
		})
	}
	return res
}

// Validate rejects negative cash and targets outside [0, 100].
func Validate(targets map[string]decimal.Decimal, cash decimal.Decimal) error {
	if cash.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeCash, cash)
	}
	for sym, pct := range targets {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s=%s", ErrTargetOutOfRange, sym, pct)
		}
	}
	return nil
}
