package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/config"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Archive is a write-only long-term store for price points. Postgres
// keeps the rolling retention window; everything written here survives
// the cleanup job. Archive failures are logged by callers and never
// fail an update run.
type Archive struct {
	db *sqlx.DB
}

// NewArchive connects to ClickHouse and ensures the archive table
func NewArchive(cfg *config.ArchiveConfig) (*Archive, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		DialTimeout: 5 * time.Second,
	})

	db := sqlx.NewDb(conn, "clickhouse")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	archive := &Archive{db: db}
	if err := archive.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("clickhouse price archive initialized",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)

	return archive, nil
}

func (a *Archive) ensureSchema() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_archive (
			ts DateTime,
			symbol String,
			kind String,
			price Float64,
			change Nullable(Float64),
			change_percent Nullable(Float64),
			volume Nullable(Int64),
			source String
		) ENGINE = MergeTree()
		ORDER BY (symbol, ts)
	`)
	if err != nil {
		return fmt.Errorf("failed to create archive table: %w", err)
	}

	return nil
}

// ArchiveStockPrice appends one stock price point
func (a *Archive) ArchiveStockPrice(ctx context.Context, symbol string, quote *models.Quote) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO price_archive (ts, symbol, kind, price, change, change_percent, volume, source)
		VALUES (?, ?, 'stock', ?, ?, ?, ?, ?)
	`, time.Now().UTC(), symbol, *quote.Price, quote.Change, quote.ChangePercent, quote.Volume, quote.Source)
	if err != nil {
		return fmt.Errorf("failed to archive stock price: %w", err)
	}

	return nil
}

// ArchiveIndexPrice appends one index level point
func (a *Archive) ArchiveIndexPrice(ctx context.Context, symbol string, quote *models.IndexQuote) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO price_archive (ts, symbol, kind, price, change, change_percent, volume, source)
		VALUES (?, ?, 'index', ?, ?, ?, NULL, ?)
	`, time.Now().UTC(), symbol, *quote.Level, quote.Change, quote.ChangePercent, quote.Source)
	if err != nil {
		return fmt.Errorf("failed to archive index price: %w", err)
	}

	return nil
}

// Close closes the clickhouse connection
func (a *Archive) Close() error {
	return a.db.Close()
}
