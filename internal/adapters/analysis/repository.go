package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles database operations for analysis snapshots
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new analysis repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Save appends one analysis snapshot
func (r *Repository) Save(ctx context.Context, a *models.StockAnalysis) error {
	query := `
		INSERT INTO stock_analyses (
			stock_id, price, market_cap, pe_trailing, pe_forward, peg_ratio,
			debt_equity, current_ratio, quick_ratio, interest_coverage,
			cash, total_debt, net_cash, free_cash_flow,
			gross_margin, operating_margin, net_margin, roe, dividend_yield,
			gf_score, altman_z_score, piotroski_score, price_target, analyst_rating,
			rating, sentiment, conclusion_en, conclusion_es, sources, raw_data
		) VALUES (
			:stock_id, :price, :market_cap, :pe_trailing, :pe_forward, :peg_ratio,
			:debt_equity, :current_ratio, :quick_ratio, :interest_coverage,
			:cash, :total_debt, :net_cash, :free_cash_flow,
			:gross_margin, :operating_margin, :net_margin, :roe, :dividend_yield,
			:gf_score, :altman_z_score, :piotroski_score, :price_target, :analyst_rating,
			:rating, :sentiment, :conclusion_en, :conclusion_es, :sources, :raw_data
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// Latest returns the most recent analysis snapshot for a stock
func (r *Repository) Latest(ctx context.Context, stockID int64) (*models.StockAnalysis, error) {
	query := `
		SELECT *
		FROM stock_analyses
		WHERE stock_id = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var a models.StockAnalysis
	err := r.db.GetContext(ctx, &a, query, stockID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}

	return &a, nil
}

// CleanupOld removes snapshots older than the retention window
func (r *Repository) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	query := `DELETE FROM stock_analyses WHERE ts < NOW() - $1 * INTERVAL '1 day'`

	result, err := r.db.ExecContext(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup analyses: %w", err)
	}

	deleted, _ := result.RowsAffected()
	return deleted, nil
}
