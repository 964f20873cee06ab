package price

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles price time series database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new price repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// SaveStockPrice appends one price point for a stock
func (r *Repository) SaveStockPrice(ctx context.Context, stockID int64, quote *models.Quote) error {
	query := `
		INSERT INTO stock_prices (stock_id, price, change, change_percent, volume, market_cap, pe_ratio, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		stockID,
		decimal.NewFromFloat(*quote.Price),
		decPtr(quote.Change),
		decPtr(quote.ChangePercent),
		quote.Volume,
		decPtr(quote.MarketCap),
		decPtr(quote.PETrailing),
		quote.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save stock price: %w", err)
	}

	return nil
}

// SaveIndexPrice appends one level point for an index
func (r *Repository) SaveIndexPrice(ctx context.Context, indexID int64, quote *models.IndexQuote) error {
	query := `
		INSERT INTO index_prices (index_id, level, change, change_percent, source)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		indexID,
		decimal.NewFromFloat(*quote.Level),
		decPtr(quote.Change),
		decPtr(quote.ChangePercent),
		quote.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save index price: %w", err)
	}

	return nil
}

// LatestStockPrices returns the most recent price points for a stock,
// newest first
func (r *Repository) LatestStockPrices(ctx context.Context, stockID int64, limit int) ([]models.StockPrice, error) {
	query := `
		SELECT id, stock_id, price, change, change_percent, volume, market_cap, pe_ratio, ts, source
		FROM stock_prices
		WHERE stock_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`

	prices := make([]models.StockPrice, 0)
	if err := r.db.SelectContext(ctx, &prices, query, stockID, limit); err != nil {
		return nil, fmt.Errorf("failed to query stock prices: %w", err)
	}

	return prices, nil
}

// LatestIndexPrice returns the most recent level point for an index
func (r *Repository) LatestIndexPrice(ctx context.Context, indexID int64) (*models.IndexPrice, error) {
	query := `
		SELECT id, index_id, level, change, change_percent, ts, source
		FROM index_prices
		WHERE index_id = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var price models.IndexPrice
	err := r.db.GetContext(ctx, &price, query, indexID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query index price: %w", err)
	}

	return &price, nil
}

// CleanupOld removes price points older than the retention window and
// returns how many rows were deleted across both tables
func (r *Repository) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	var total int64

	for _, table := range []string{"stock_prices", "index_prices"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE ts < NOW() - $1 * INTERVAL '1 day'`, table)

		result, err := r.db.ExecContext(ctx, query, retentionDays)
		if err != nil {
			return total, fmt.Errorf("failed to cleanup %s: %w", table, err)
		}

		deleted, _ := result.RowsAffected()
		total += deleted
	}

	return total, nil
}

func decPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
