package pricing

import (
	"context"

	"github.com/rs/zerolog"
	"rebalancer/internal/provider"
)

// Validator decides whether a symbol can be quoted by asking checkers in order.
//
// A positive answer from any checker is final. Otherwise the last checker
// decides: a clean "not found" rejects the symbol, while an error accepts it.
type Validator struct {
	checkers []provider.Checker
	log      zerolog.Logger
}

func NewValidator(log zerolog.Logger, checkers ...provider.Checker) *Validator {
	return &Validator{
		checkers: checkers,
		log:      log.With().Str("component", "validator").Logger(),
	}
}

func (v *Validator) IsQuotable(ctx context.Context, symbol string) bool {
	if len(v.checkers) == 0 {
		v.log.Warn().Str("symbol", symbol).Msg("no checkers configured, accepting symbol")
		return true
	}

	for i, c := range v.checkers {
		ok, err := c.Check(ctx, symbol)
		if err == nil && ok {
			return true
		}
		last := i == len(v.checkers)-1
		if err != nil {
			if last {
				v.log.Warn().Err(err).
					Str("checker", c.Name()).
					Str("symbol", symbol).
					Msg("check failed, accepting symbol")
				return true
			}
			v.log.Debug().Err(err).Str("checker", c.Name()).Str("symbol", symbol).Msg("check failed, trying next")
			continue
		}
		if last {
			return false
		}
	}
	return false
}
