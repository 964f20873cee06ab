package runlog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles the append-only run audit log
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new run log repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Save appends one run record
func (r *Repository) Save(ctx context.Context, log *models.ScrapingLog) error {
	query := `
		INSERT INTO scraping_logs (source, task_type, status, items_scraped, error_message, duration_seconds)
		VALUES (:source, :task_type, :status, :items_scraped, :error_message, :duration_seconds)
	`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("failed to save run log: %w", err)
	}

	return nil
}

// Recent returns the newest run records
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.ScrapingLog, error) {
	query := `
		SELECT id, source, task_type, status, items_scraped, error_message, duration_seconds, ts
		FROM scraping_logs
		ORDER BY ts DESC
		LIMIT $1
	`

	logs := make([]models.ScrapingLog, 0)
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query run logs: %w", err)
	}

	return logs, nil
}

// CleanupOld removes run records older than the retention window
func (r *Repository) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	query := `DELETE FROM scraping_logs WHERE ts < NOW() - $1 * INTERVAL '1 day'`

	result, err := r.db.ExecContext(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup run logs: %w", err)
	}

	deleted, _ := result.RowsAffected()
	return deleted, nil
}
