package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"rebalancer/internal/portfolio"
	"rebalancer/internal/ports"
	"rebalancer/internal/provider"
	"rebalancer/internal/rebalance"
	"rebalancer/internal/storage"
)

var (
	// ErrInvalidInput is returned for malformed or out-of-range arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidSymbol is returned when no provider can quote a symbol.
	ErrInvalidSymbol = errors.New("symbol is not quotable")
)

// Service ties price resolution, the rebalancing calculator and persistence together.
type Service struct {
	repo      ports.PortfolioRepository
	resolver  ports.PriceResolver
	validator ports.SymbolValidator
	log       zerolog.Logger
}

func NewService(repo ports.PortfolioRepository, resolver ports.PriceResolver, validator ports.SymbolValidator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		resolver:  resolver,
		validator: validator,
		log:       log.With().Str("component", "app").Logger(),
	}
}

// View is a portfolio valued at current prices, without cash.
type View struct {
	Portfolio portfolio.Portfolio `json:"portfolio"`
	rebalance.Valuation
}

// RebalancePlan is the outcome of a rebalance submission.
type RebalancePlan struct {
	Portfolio portfolio.Portfolio `json:"portfolio"`
	rebalance.Result
}

// ResolvePrices normalizes the symbols and returns whatever the providers priced.
func (s *Service) ResolvePrices(ctx context.Context, symbols []string) map[string]provider.Quote {
	return s.resolver.Resolve(ctx, provider.NormalizeSymbols(symbols))
}

// IsQuotable normalizes the symbol and asks the validator.
func (s *Service) IsQuotable(ctx context.Context, symbol string) (bool, error) {
	sym := provider.NormalizeSymbol(symbol)
	if sym == "" {
		return false, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	return s.validator.IsQuotable(ctx, sym), nil
}

func (s *Service) CreatePortfolio(ctx context.Context, name, kind string) (portfolio.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return portfolio.Portfolio{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.repo.CreatePortfolio(ctx, portfolio.Portfolio{
		Name: name,
		Type: strings.ToUpper(strings.TrimSpace(kind)),
	})
}

func (s *Service) ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error) {
	return s.repo.ListPortfolios(ctx)
}

func (s *Service) GetPortfolio(ctx context.Context, id string) (portfolio.Portfolio, error) {
	return s.repo.GetPortfolio(ctx, id)
}

func (s *Service) DeletePortfolio(ctx context.Context, id string) error {
	return s.repo.DeletePortfolio(ctx, id)
}

// AddHolding normalizes the symbol, rejects negative units and symbols no
// provider can quote, and stores the holding.
func (s *Service) AddHolding(ctx context.Context, portfolioID, symbol string, units decimal.Decimal) (portfolio.Holding, error) {
	sym := provider.NormalizeSymbol(symbol)
	if sym == "" {
		return portfolio.Holding{}, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if units.IsNegative() {
		return portfolio.Holding{}, fmt.Errorf("%w: units must not be negative", ErrInvalidInput)
	}
	if _, err := s.repo.GetPortfolio(ctx, portfolioID); err != nil {
		return portfolio.Holding{}, err
	}
	if !s.validator.IsQuotable(ctx, sym) {
		return portfolio.Holding{}, fmt.Errorf("%w: %s", ErrInvalidSymbol, sym)
	}
	h, err := s.repo.AddHolding(ctx, portfolio.Holding{
		PortfolioID:      portfolioID,
		Symbol:           sym,
		Units:            units,
		TargetPercentage: decimal.Zero,
	})
	if errors.Is(err, storage.ErrConflict) {
		return portfolio.Holding{}, fmt.Errorf("%w: %s is already held", ErrInvalidInput, sym)
	}
	return h, err
}

func (s *Service) UpdateUnits(ctx context.Context, holdingID string, units decimal.Decimal) (portfolio.Holding, error) {
	if units.IsNegative() {
		return portfolio.Holding{}, fmt.Errorf("%w: units must not be negative", ErrInvalidInput)
	}
	return s.repo.UpdateUnits(ctx, holdingID, units)
}

func (s *Service) DeleteHolding(ctx context.Context, holdingID string) error {
	return s.repo.DeleteHolding(ctx, holdingID)
}

// View resolves every holding's symbol, values the portfolio and writes fresh
// quotes back to the holding cache.
func (s *Service) View(ctx context.Context, portfolioID string) (View, error) {
	p, holdings, err := s.load(ctx, portfolioID)
	if err != nil {
		return View{}, err
	}
	v := rebalance.Value(holdings, s.resolve(ctx, holdings))
	if err := s.persistPrices(ctx, portfolioID, v); err != nil {
		return View{}, err
	}
	return View{Portfolio: p, Valuation: v}, nil
}

// RebalanceForm is the valuation a rebalance is submitted from. Each holding
// carries its last submitted target percentage.
func (s *Service) RebalanceForm(ctx context.Context, portfolioID string) (View, error) {
	return s.View(ctx, portfolioID)
}

// Rebalance validates the submission, refreshes prices, stores the submitted
// targets and computes the trades. A holding without a submitted target uses
// its stored one.
func (s *Service) Rebalance(ctx context.Context, portfolioID string, targets map[string]decimal.Decimal, cash decimal.Decimal) (RebalancePlan, error) {
	normalized := make(map[string]decimal.Decimal, len(targets))
	for sym, pct := range targets {
		normalized[provider.NormalizeSymbol(sym)] = pct
	}
	if err := rebalance.Validate(normalized, cash); err != nil {
		return RebalancePlan{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	p, holdings, err := s.load(ctx, portfolioID)
	if err != nil {
		return RebalancePlan{}, err
	}

	held := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		held[h.Symbol] = struct{}{}
	}
	for sym := range normalized {
		if _, ok := held[sym]; !ok {
			return RebalancePlan{}, fmt.Errorf("%w: %s is not held in this portfolio", ErrInvalidInput, sym)
		}
	}

	cache := s.repo.HoldingCache(portfolioID)
	effective := make(map[string]decimal.Decimal, len(holdings))
	for _, h := range holdings {
		if pct, ok := normalized[h.Symbol]; ok {
			effective[h.Symbol] = pct
			continue
		}
		pct, err := cache.ReadTargetPercentage(ctx, h.Symbol)
		if err != nil {
			return RebalancePlan{}, err
		}
		effective[h.Symbol] = pct
	}

	res := rebalance.Compute(holdings, s.resolve(ctx, holdings), effective, cash)
	if err := s.persistPrices(ctx, portfolioID, res.Valuation); err != nil {
		return RebalancePlan{}, err
	}
	for sym, pct := range normalized {
		if err := cache.WriteTargetPercentage(ctx, sym, pct); err != nil {
			return RebalancePlan{}, err
		}
	}

	s.log.Info().
		Str("portfolio", portfolioID).
		Str("total", res.TotalValue.String()).
		Int("actions", len(res.Actions)).
		Msg("rebalance computed")
	return RebalancePlan{Portfolio: p, Result: res}, nil
}

// LastKnownPrice resolves one symbol of a portfolio and falls back to the
// holding's cached price. ErrNotFound means the symbol is not held in the
// portfolio or neither price is available.
func (s *Service) LastKnownPrice(ctx context.Context, portfolioID, symbol string) (provider.Quote, error) {
	sym := provider.NormalizeSymbol(symbol)
	if sym == "" {
		return provider.Quote{}, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetPortfolio(ctx, portfolioID); err != nil {
		return provider.Quote{}, err
	}

	cache := s.repo.HoldingCache(portfolioID)
	cached, ok, err := cache.ReadPrice(ctx, sym)
	if err != nil {
		return provider.Quote{}, err
	}

	if q, found := s.resolver.Resolve(ctx, []string{sym})[sym]; found {
		if err := cache.WritePrice(ctx, sym, q.Price, q.Timestamp); err != nil {
			return provider.Quote{}, err
		}
		return q, nil
	}

	if !ok {
		return provider.Quote{}, fmt.Errorf("no price available for %s: %w", sym, storage.ErrNotFound)
	}
	return provider.Quote{Symbol: sym, Price: cached.Price, Timestamp: cached.Timestamp, Source: "cache"}, nil
}

func (s *Service) load(ctx context.Context, portfolioID string) (portfolio.Portfolio, []portfolio.Holding, error) {
	p, err := s.repo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return portfolio.Portfolio{}, nil, err
	}
	holdings, err := s.repo.ListHoldings(ctx, portfolioID)
	if err != nil {
		return portfolio.Portfolio{}, nil, err
	}
	return p, holdings, nil
}

func (s *Service) resolve(ctx context.Context, holdings []portfolio.Holding) map[string]provider.Quote {
	if len(holdings) == 0 {
		return map[string]provider.Quote{}
	}
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return s.resolver.Resolve(ctx, symbols)
}

// persistPrices writes back the cache of every holding that got a fresh quote.
func (s *Service) persistPrices(ctx context.Context, portfolioID string, v rebalance.Valuation) error {
	cache := s.repo.HoldingCache(portfolioID)
	for _, h := range v.Refreshed() {
		if err := cache.WritePrice(ctx, h.Symbol, h.LastPrice.Decimal, h.LastPriceTimestamp); err != nil {
			return fmt.Errorf("persist price %s: %w", h.Symbol, err)
		}
	}
	return nil
}
