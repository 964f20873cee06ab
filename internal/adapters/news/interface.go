package news

import (
	"context"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Provider fetches news articles for one symbol from one upstream source
type Provider interface {
	// News returns up to limit recent articles for symbol
	News(ctx context.Context, symbol string, limit int) ([]models.Article, error)

	// Name returns provider name
	Name() string
}

// SentimentAnalyzer labels article text
type SentimentAnalyzer interface {
	Classify(text string) models.NewsSentiment
}
