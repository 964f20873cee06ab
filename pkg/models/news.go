package models

import "time"

// StockNews is a persisted news article tied to one stock.
// Identity for deduplication is (stock, headline).
type StockNews struct {
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	PublishedAt *time.Time    `json:"published_at" db:"published_at"`
	HeadlineES  *string       `json:"headline_es" db:"headline_es"`
	Summary     *string       `json:"summary" db:"summary"`
	SummaryES   *string       `json:"summary_es" db:"summary_es"`
	URL         *string       `json:"url" db:"url"`
	Headline    string        `json:"headline" db:"headline"`
	Source      string        `json:"source" db:"source"`
	Sentiment   NewsSentiment `json:"sentiment" db:"sentiment"`
	ID          int64         `json:"id" db:"id"`
	StockID     int64         `json:"stock_id" db:"stock_id"`
}

// MarketNews is a persisted market-wide article, deduplicated by headline
type MarketNews struct {
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	HeadlineES  *string    `json:"headline_es" db:"headline_es"`
	Summary     *string    `json:"summary" db:"summary"`
	SummaryES   *string    `json:"summary_es" db:"summary_es"`
	URL         *string    `json:"url" db:"url"`
	Headline    string     `json:"headline" db:"headline"`
	Source      string     `json:"source" db:"source"`
	Category    string     `json:"category" db:"category"`
	ID          int64      `json:"id" db:"id"`
}

// Article is a normalized news item as returned by a provider, before
// filtering and persistence
type Article struct {
	PublishedAt *time.Time
	Headline    string
	Summary     string
	URL         string
	Source      string
	Sentiment   NewsSentiment
}
