package news

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Aggregator concatenates provider results for a symbol, drops garbage
// and duplicate headlines, labels sentiment and sorts newest first.
// A failed provider is logged and skipped; only all providers failing
// yields an error from the caller's perspective (zero articles).
type Aggregator struct {
	providers []Provider
	sentiment SentimentAnalyzer
}

// NewAggregator creates new news aggregator
func NewAggregator(sentiment SentimentAnalyzer, providers ...Provider) *Aggregator {
	return &Aggregator{
		providers: providers,
		sentiment: sentiment,
	}
}

// ForSymbol returns the merged article list for symbol
func (a *Aggregator) ForSymbol(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	seen := make(map[string]bool)
	articles := make([]models.Article, 0)

	for _, provider := range a.providers {
		fetched, err := provider.News(ctx, symbol, limit)
		if err != nil {
			logger.Warn("news provider failed",
				zap.String("provider", provider.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			continue
		}

		for _, article := range fetched {
			if !IsValidHeadline(article.Headline) {
				continue
			}

			key := strings.ToLower(strings.TrimSpace(article.Headline))
			if seen[key] {
				continue
			}
			seen[key] = true

			if article.Sentiment == "" {
				article.Sentiment = a.sentiment.Classify(article.Headline + " " + article.Summary)
			}

			articles = append(articles, article)
		}
	}

	// Newest first; articles without a published time sort last
	sort.SliceStable(articles, func(i, j int) bool {
		pi, pj := articles[i].PublishedAt, articles[j].PublishedAt
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return pi.After(*pj)
	})

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	return articles, nil
}
