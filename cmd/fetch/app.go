package main

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"rebalancer/internal/config"
	"rebalancer/internal/httpx"
	"rebalancer/internal/logger"
	"rebalancer/internal/pricing"
)

// env is what every subcommand needs: configuration, a logger and the
// provider chain.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	sources pricing.Sources
}

func openEnv() (*env, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: true})

	hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec)*time.Second, log)
	sources, err := pricing.NewSources(cfg, hc, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, sources: sources}, nil
}

// formatMoney renders amount in currency, truncated to the currency's minor
// unit. Unknown currencies fall back to the plain decimal.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
	}
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(amount.Mul(factor).IntPart(), cur.Code).Display()
}
