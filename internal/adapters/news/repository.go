package news

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Repository handles database operations for news articles
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new news repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// SaveStockNews inserts articles for one stock, skipping headlines that
// already exist for it. Returns how many rows were actually inserted.
func (r *Repository) SaveStockNews(ctx context.Context, stockID int64, articles []models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO stock_news (stock_id, headline, summary, url, source, published_at, sentiment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stock_id, headline) DO NOTHING
	`

	inserted := 0
	for _, article := range articles {
		if !IsValidHeadline(article.Headline) {
			continue
		}

		sentiment := article.Sentiment
		if sentiment == "" {
			sentiment = models.NewsNeutral
		}

		result, err := r.db.ExecContext(ctx, query,
			stockID,
			article.Headline,
			nullIfEmpty(article.Summary),
			nullIfEmpty(article.URL),
			article.Source,
			article.PublishedAt,
			sentiment,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to save stock news: %w", err)
		}

		if rows, _ := result.RowsAffected(); rows > 0 {
			inserted++
		}
	}

	return inserted, nil
}

// SaveMarketNews inserts market-wide articles, deduplicated by headline
func (r *Repository) SaveMarketNews(ctx context.Context, articles []models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO market_news (headline, summary, url, source, category, published_at)
		VALUES ($1, $2, $3, $4, 'market', $5)
		ON CONFLICT (headline) DO NOTHING
	`

	inserted := 0
	for _, article := range articles {
		if !IsValidHeadline(article.Headline) {
			continue
		}

		result, err := r.db.ExecContext(ctx, query,
			article.Headline,
			nullIfEmpty(article.Summary),
			nullIfEmpty(article.URL),
			article.Source,
			article.PublishedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to save market news: %w", err)
		}

		if rows, _ := result.RowsAffected(); rows > 0 {
			inserted++
		}
	}

	return inserted, nil
}

// RecentStockNews returns the newest articles for a stock
func (r *Repository) RecentStockNews(ctx context.Context, stockID int64, limit int) ([]models.StockNews, error) {
	query := `
		SELECT id, stock_id, headline, headline_es, summary, summary_es, url, source, published_at, sentiment, created_at
		FROM stock_news
		WHERE stock_id = $1
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $2
	`

	news := make([]models.StockNews, 0)
	if err := r.db.SelectContext(ctx, &news, query, stockID, limit); err != nil {
		return nil, fmt.Errorf("failed to query stock news: %w", err)
	}

	return news, nil
}

// RecentNews returns the newest articles across all stocks
func (r *Repository) RecentNews(ctx context.Context, limit int) ([]models.StockNews, error) {
	query := `
		SELECT id, stock_id, headline, headline_es, summary, summary_es, url, source, published_at, sentiment, created_at
		FROM stock_news
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $1
	`

	news := make([]models.StockNews, 0)
	if err := r.db.SelectContext(ctx, &news, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query stock news: %w", err)
	}

	return news, nil
}

// RecentMarketNews returns the newest market-wide articles
func (r *Repository) RecentMarketNews(ctx context.Context, limit int) ([]models.MarketNews, error) {
	query := `
		SELECT id, headline, headline_es, summary, summary_es, url, source, category, published_at, created_at
		FROM market_news
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $1
	`

	news := make([]models.MarketNews, 0)
	if err := r.db.SelectContext(ctx, &news, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query market news: %w", err)
	}

	return news, nil
}

// CleanupOld removes articles older than the retention window and
// returns the total rows deleted
func (r *Repository) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	var total int64

	for _, table := range []string{"stock_news", "market_news"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE created_at < NOW() - $1 * INTERVAL '1 day'`, table)

		result, err := r.db.ExecContext(ctx, query, retentionDays)
		if err != nil {
			return total, fmt.Errorf("failed to cleanup %s: %w", table, err)
		}

		deleted, _ := result.RowsAffected()
		total += deleted
	}

	return total, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
