package pricing

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"rebalancer/internal/config"
	"rebalancer/internal/httpx"
	"rebalancer/internal/provider"
	"rebalancer/internal/provider/cache"
	"rebalancer/internal/provider/ratelimit"
	"rebalancer/internal/provider/twelvedata"
	"rebalancer/internal/provider/twelvedataadapter"
	"rebalancer/internal/provider/yahoo"
)

// Sources is the provider chain built from configuration, primary first.
type Sources struct {
	Providers []provider.Provider
	Checkers  []provider.Checker

	// TwelveData is nil when no API key is configured.
	TwelveData *twelvedata.TwelveDataAPIClient
	Yahoo      *yahoo.Provider
}

// NewSources wires Twelve Data (only when an API key is set) ahead of Yahoo.
// Each upstream gets one limiter shared by its Provider and Checker; the
// Twelve Data provider is additionally wrapped in a per-symbol cache.
func NewSources(cfg config.Config, hc *httpx.Client, log zerolog.Logger) (Sources, error) {
	var s Sources

	if cfg.TwelveData.APIKey != "" {
		client, err := twelvedata.NewTwelveDataAPIClient(
			cfg.TwelveData.APIKey,
			twelvedata.WithHTTPClient(hc),
			twelvedata.WithBaseURL(cfg.TwelveData.BaseURL),
		)
		if err != nil {
			return Sources{}, fmt.Errorf("twelvedata client: %w", err)
		}
		td := twelvedataadapter.New(twelvedataadapter.Config{Name: "TwelveData"}, client)
		lim := limiterFor(cfg.TwelveData.MaxRequestsPerMinute, cfg.TwelveData.Burst, cfg.TwelveData.MinRequestIntervalSec)

		var p provider.Provider = &ratelimit.Provider{P: td, L: lim}
		if cfg.TwelveData.CacheTTLSeconds > 0 {
			p = &cache.Provider{
				P:        p,
				TTL:      time.Duration(cfg.TwelveData.CacheTTLSeconds) * time.Second,
				MaxItems: cfg.TwelveData.CacheMaxItems,
			}
		}
		s.Providers = append(s.Providers, p)
		s.Checkers = append(s.Checkers, &ratelimit.Checker{C: td, L: lim})
		s.TwelveData = client
	} else {
		log.Info().Msg("twelvedata api key not set; using yahoo only")
	}

	// Yahoo makes one request per symbol, so the limiter sits inside the
	// provider rather than around Fetch.
	y := yahoo.New(yahoo.Config{
		Name:    "Yahoo",
		BaseURL: cfg.Yahoo.BaseURL,
		Range:   cfg.Yahoo.Range,
		Limiter: limiterFor(cfg.Yahoo.MaxRequestsPerMinute, cfg.Yahoo.Burst, cfg.Yahoo.MinRequestIntervalSec),
	}, hc, log)
	s.Providers = append(s.Providers, y)
	s.Checkers = append(s.Checkers, y)
	s.Yahoo = y

	return s, nil
}

// Resolver builds a Resolver over the chain.
func (s Sources) Resolver(log zerolog.Logger) *Resolver {
	return NewResolver(log, s.Providers...)
}

// Validator builds a Validator over the chain.
func (s Sources) Validator(log zerolog.Logger) *Validator {
	return NewValidator(log, s.Checkers...)
}

// limiterFor combines a token bucket (rpm) and a minimum interval; either may
// be unset. nil when neither is configured.
func limiterFor(rpm, burst, minIntervalSec int) ratelimit.Limiter {
	var chain ratelimit.Chain
	if rpm > 0 {
		chain = append(chain, ratelimit.PerMinute(rpm, burst))
	}
	if minIntervalSec > 0 {
		chain = append(chain, ratelimit.NewMinInterval(time.Duration(minIntervalSec)*time.Second))
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	default:
		return chain
	}
}
