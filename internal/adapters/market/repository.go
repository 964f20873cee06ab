package market

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/config"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles the tracked symbol universe
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new symbols repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// InitSymbols reconciles the database against the configured universe.
// Listed symbols are upserted and reactivated; symbols no longer listed
// are deactivated, never deleted, so their history survives.
func (r *Repository) InitSymbols(ctx context.Context, symbols *config.Symbols) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stockSymbols := make([]string, 0, len(symbols.Stocks))
	for _, s := range symbols.Stocks {
		stockSymbols = append(stockSymbols, s.Symbol)

		_, err := tx.ExecContext(ctx, `
			INSERT INTO stocks (symbol, name, sector)
			VALUES ($1, $2, $3)
			ON CONFLICT (symbol) DO UPDATE SET
				name = EXCLUDED.name,
				sector = EXCLUDED.sector,
				is_active = TRUE,
				updated_at = NOW()
		`, s.Symbol, s.Name, s.Sector)
		if err != nil {
			return fmt.Errorf("failed to upsert stock %s: %w", s.Symbol, err)
		}
	}

	indexSymbols := make([]string, 0, len(symbols.Indices))
	for _, idx := range symbols.Indices {
		indexSymbols = append(indexSymbols, idx.Symbol)

		_, err := tx.ExecContext(ctx, `
			INSERT INTO indices (symbol, name)
			VALUES ($1, $2)
			ON CONFLICT (symbol) DO UPDATE SET
				name = EXCLUDED.name,
				is_active = TRUE,
				updated_at = NOW()
		`, idx.Symbol, idx.Name)
		if err != nil {
			return fmt.Errorf("failed to upsert index %s: %w", idx.Symbol, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE stocks SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND symbol <> ALL($1)
	`, pq.Array(stockSymbols)); err != nil {
		return fmt.Errorf("failed to deactivate removed stocks: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE indices SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND symbol <> ALL($1)
	`, pq.Array(indexSymbols)); err != nil {
		return fmt.Errorf("failed to deactivate removed indices: %w", err)
	}

	return tx.Commit()
}

// ActiveStocks returns all active stocks ordered by symbol
func (r *Repository) ActiveStocks(ctx context.Context) ([]models.Stock, error) {
	stocks := make([]models.Stock, 0)

	err := r.db.SelectContext(ctx, &stocks, `
		SELECT id, symbol, name, sector, is_active, created_at, updated_at
		FROM stocks
		WHERE is_active
		ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}

	return stocks, nil
}

// ActiveIndices returns all active indices ordered by symbol
func (r *Repository) ActiveIndices(ctx context.Context) ([]models.Index, error) {
	indices := make([]models.Index, 0)

	err := r.db.SelectContext(ctx, &indices, `
		SELECT id, symbol, name, is_active, created_at, updated_at
		FROM indices
		WHERE is_active
		ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query indices: %w", err)
	}

	return indices, nil
}

// StockBySymbol returns one stock by its symbol
func (r *Repository) StockBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock

	err := r.db.GetContext(ctx, &stock, `
		SELECT id, symbol, name, sector, is_active, created_at, updated_at
		FROM stocks
		WHERE symbol = $1
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("stock %s not found: %w", symbol, err)
	}

	return &stock, nil
}
