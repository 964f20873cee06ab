package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles the report cache. At most one row exists per
// (report_type, language); regeneration overwrites it.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new report cache repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts one generated report
func (r *Repository) Save(ctx context.Context, reportType, language string, content []byte) error {
	query := `
		INSERT INTO report_cache (report_type, language, content, generated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (report_type, language) DO UPDATE SET
			content = EXCLUDED.content,
			generated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, reportType, language, content); err != nil {
		return fmt.Errorf("failed to save report %s/%s: %w", reportType, language, err)
	}

	return nil
}

// Get returns the cached report, or nil when none was generated yet
func (r *Repository) Get(ctx context.Context, reportType, language string) (*models.ReportCache, error) {
	var report models.ReportCache

	query := `
		SELECT id, report_type, language, content, generated_at
		FROM report_cache
		WHERE report_type = $1 AND language = $2
	`

	err := r.db.GetContext(ctx, &report, query, reportType, language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report %s/%s: %w", reportType, language, err)
	}

	return &report, nil
}
