package pricing

import (
	"context"

	"github.com/rs/zerolog"
	"rebalancer/internal/provider"
)

// Resolver prices symbols from an ordered list of providers. Each provider is
// asked only for the symbols every earlier provider left unpriced, so the
// first provider to answer for a symbol wins.
type Resolver struct {
	providers []provider.Provider
	log       zerolog.Logger
}

func NewResolver(log zerolog.Logger, providers ...provider.Provider) *Resolver {
	return &Resolver{
		providers: providers,
		log:       log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns a quote for every symbol some provider priced. Provider
// failures are logged and treated as "no data from this provider"; symbols no
// provider priced are absent from the result.
func (r *Resolver) Resolve(ctx context.Context, symbols []string) map[string]provider.Quote {
	out := make(map[string]provider.Quote, len(symbols))
	pending := dedupe(symbols)

	for _, p := range r.providers {
		if len(pending) == 0 {
			break
		}
		quotes, err := p.Fetch(ctx, pending)
		if err != nil {
			r.log.Warn().Err(err).
				Str("provider", p.Name()).
				Int("symbols", len(pending)).
				Msg("provider failed, falling back")
			continue
		}

		left := make([]string, 0, len(pending))
		for _, sym := range pending {
			q, ok := quotes[sym]
			if !ok || q.Price.IsNegative() {
				left = append(left, sym)
				continue
			}
			q.Symbol = sym
			if q.Source == "" {
				q.Source = p.Name()
			}
			out[sym] = q
		}
		r.log.Debug().
			Str("provider", p.Name()).
			Int("priced", len(pending)-len(left)).
			Int("pending", len(left)).
			Msg("provider answered")
		pending = left
	}

	if len(pending) > 0 {
		r.log.Debug().Strs("symbols", pending).Msg("unresolved")
	}
	return out
}

func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
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
