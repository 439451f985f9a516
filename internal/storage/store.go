package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
	"rebalancer/internal/portfolio"
	"rebalancer/internal/ports"
)

var (
	// ErrNotFound is returned when a portfolio or holding does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a portfolio already holds the symbol.
	ErrConflict = errors.New("already exists")
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolios (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	type       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS holdings (
	id                   TEXT PRIMARY KEY,
	portfolio_id         TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
	symbol               TEXT NOT NULL,
	units                TEXT NOT NULL,
	target_percentage    TEXT NOT NULL DEFAULT '0',
	last_price           TEXT,
	last_price_timestamp TEXT NOT NULL DEFAULT '',
	UNIQUE (portfolio_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_holdings_portfolio ON holdings(portfolio_id);
`

// Store persists portfolios and holdings in SQLite. Decimals are stored as
// TEXT so no precision is lost.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ ports.PortfolioRepository = (*Store)(nil)

// Open creates the database file if needed and applies the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{
		db:  db,
		log: log.With().Str("component", "storage").Logger(),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO portfolios (id, name, type, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Type, p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return portfolio.Portfolio{}, fmt.Errorf("failed to insert portfolio: %w", err)
	}
	s.log.Debug().Str("portfolio", p.ID).Msg("portfolio created")
	return p, nil
}

func (s *Store) ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, created_at FROM portfolios ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	out := []portfolio.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios: %w", err)
	}
	return out, nil
}

func (s *Store) GetPortfolio(ctx context.Context, id string) (portfolio.Portfolio, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, type, created_at FROM portfolios WHERE id = ?`, id)
	p, err := scanPortfolio(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portfolio.Portfolio{}, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return portfolio.Portfolio{}, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return p, nil
}

// DeletePortfolio removes the portfolio and, through the foreign key, its holdings.
func (s *Store) DeletePortfolio(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return expectOne(res, "portfolio", id)
}

func (s *Store) ListHoldings(ctx context.Context, portfolioID string) ([]portfolio.Holding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, portfolio_id, symbol, units, target_percentage, last_price, last_price_timestamp
		FROM holdings
		WHERE portfolio_id = ?
		ORDER BY symbol
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	out := []portfolio.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}
	return out, nil
}

func (s *Store) GetHolding(ctx context.Context, id string) (portfolio.Holding, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, portfolio_id, symbol, units, target_percentage, last_price, last_price_timestamp
		FROM holdings
		WHERE id = ?
	`, id)
	h, err := scanHolding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portfolio.Holding{}, fmt.Errorf("holding %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to get holding: %w", err)
	}
	return h, nil
}

// AddHolding inserts a holding. The portfolio must exist and must not already
// hold the symbol.
func (s *Store) AddHolding(ctx context.Context, h portfolio.Holding) (portfolio.Holding, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolios WHERE id = ?`, h.PortfolioID).Scan(&n); err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to check portfolio: %w", err)
	}
	if n == 0 {
		return portfolio.Holding{}, fmt.Errorf("portfolio %s: %w", h.PortfolioID, ErrNotFound)
	}
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holdings WHERE portfolio_id = ? AND symbol = ?`, h.PortfolioID, h.Symbol,
	).Scan(&n); err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to check holding: %w", err)
	}
	if n > 0 {
		return portfolio.Holding{}, fmt.Errorf("holding %s: %w", h.Symbol, ErrConflict)
	}

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO holdings (id, portfolio_id, symbol, units, target_percentage, last_price, last_price_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.PortfolioID, h.Symbol, h.Units, h.TargetPercentage, h.LastPrice, h.LastPriceTimestamp); err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to commit holding: %w", err)
	}
	return h, nil
}

func (s *Store) UpdateUnits(ctx context.Context, id string, units decimal.Decimal) (portfolio.Holding, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE holdings SET units = ? WHERE id = ?`, units, id)
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("failed to update units: %w", err)
	}
	if err := expectOne(res, "holding", id); err != nil {
		return portfolio.Holding{}, err
	}
	return s.GetHolding(ctx, id)
}

func (s *Store) DeleteHolding(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return expectOne(res, "holding", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(row scanner) (portfolio.Portfolio, error) {
	var (
		p       portfolio.Portfolio
		created string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &created); err != nil {
		return portfolio.Portfolio{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return portfolio.Portfolio{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	p.CreatedAt = t
	return p, nil
}

func scanHolding(row scanner) (portfolio.Holding, error) {
	var h portfolio.Holding
	err := row.Scan(
		&h.ID,
		&h.PortfolioID,
		&h.Symbol,
		&h.Units,
		&h.TargetPercentage,
		&h.LastPrice,
		&h.LastPriceTimestamp,
	)
	return h, err
}

func expectOne(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
