package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// ReportTypeMarketSummary is the cached whole-market overview report
const ReportTypeMarketSummary = "market_summary"

// Supported report languages
const (
	LanguageEN = "en"
	LanguageES = "es"
)

// MarketData provides the tracked symbol universe
type MarketData interface {
	ActiveStocks(ctx context.Context) ([]models.Stock, error)
	ActiveIndices(ctx context.Context) ([]models.Index, error)
}

// PriceData provides latest persisted price points
type PriceData interface {
	LatestStockPrices(ctx context.Context, stockID int64, limit int) ([]models.StockPrice, error)
	LatestIndexPrice(ctx context.Context, indexID int64) (*models.IndexPrice, error)
}

// AnalysisData provides the most recent analysis per stock
type AnalysisData interface {
	Latest(ctx context.Context, stockID int64) (*models.StockAnalysis, error)
}

// NewsData provides recent market-wide headlines
type NewsData interface {
	RecentMarketNews(ctx context.Context, limit int) ([]models.MarketNews, error)
}

// MarketSummary is the serialized market overview report
type MarketSummary struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Language    string           `json:"language"`
	Indices     []IndexSection   `json:"indices"`
	Stocks      []StockSection   `json:"stocks"`
	Headlines   []HeadlineDigest `json:"headlines"`
}

// IndexSection is one index row in the summary
type IndexSection struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Level         *string `json:"level,omitempty"`
	ChangePercent *string `json:"change_percent,omitempty"`
	AsOf          *string `json:"as_of,omitempty"`
}

// StockSection is one stock row in the summary
type StockSection struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         *string `json:"price,omitempty"`
	ChangePercent *string `json:"change_percent,omitempty"`
	Rating        *string `json:"rating,omitempty"`
	Sentiment     *string `json:"sentiment,omitempty"`
	Conclusion    *string `json:"conclusion,omitempty"`
}

// HeadlineDigest is one market headline in the summary
type HeadlineDigest struct {
	Headline    string     `json:"headline"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Generator assembles market summary reports from persisted data
type Generator struct {
	market   MarketData
	prices   PriceData
	analyses AnalysisData
	news     NewsData
	cache    *Repository
}

// NewGenerator creates report generator
func NewGenerator(market MarketData, prices PriceData, analyses AnalysisData, news NewsData, cache *Repository) *Generator {
	return &Generator{
		market:   market,
		prices:   prices,
		analyses: analyses,
		news:     news,
		cache:    cache,
	}
}

// Generate builds one market summary in the given language
func (g *Generator) Generate(ctx context.Context, language string) (*MarketSummary, error) {
	if language != LanguageEN && language != LanguageES {
		return nil, fmt.Errorf("unsupported report language: %s", language)
	}

	summary := &MarketSummary{
		GeneratedAt: time.Now().UTC(),
		Language:    language,
		Indices:     make([]IndexSection, 0),
		Stocks:      make([]StockSection, 0),
		Headlines:   make([]HeadlineDigest, 0),
	}

	indices, err := g.market.ActiveIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load indices: %w", err)
	}

	for _, idx := range indices {
		section := IndexSection{Symbol: idx.Symbol, Name: idx.Name}

		level, err := g.prices.LatestIndexPrice(ctx, idx.ID)
		if err != nil {
			logger.Warn("report skipping index level",
				zap.String("symbol", idx.Symbol),
				zap.Error(err),
			)
		} else if level != nil {
			l := level.Level.StringFixed(2)
			section.Level = &l
			if level.ChangePercent != nil {
				cp := level.ChangePercent.StringFixed(2) + "%"
				section.ChangePercent = &cp
			}
			asOf := level.Timestamp.UTC().Format(time.RFC3339)
			section.AsOf = &asOf
		}

		summary.Indices = append(summary.Indices, section)
	}

	stocks, err := g.market.ActiveStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks: %w", err)
	}

	for _, stock := range stocks {
		section := StockSection{Symbol: stock.Symbol, Name: stock.Name}

		if prices, err := g.prices.LatestStockPrices(ctx, stock.ID, 1); err == nil && len(prices) > 0 {
			p := prices[0].Price.StringFixed(2)
			section.Price = &p
			if prices[0].ChangePercent != nil {
				cp := prices[0].ChangePercent.StringFixed(2) + "%"
				section.ChangePercent = &cp
			}
		}

		analysis, err := g.analyses.Latest(ctx, stock.ID)
		if err == nil && analysis != nil {
			section.Rating, section.Sentiment, section.Conclusion = localize(analysis, language)
		}

		summary.Stocks = append(summary.Stocks, section)
	}

	headlines, err := g.news.RecentMarketNews(ctx, 10)
	if err != nil {
		logger.Warn("report skipping market headlines", zap.Error(err))
	}

	for _, h := range headlines {
		summary.Headlines = append(summary.Headlines, HeadlineDigest{
			Headline:    h.Headline,
			Source:      h.Source,
			PublishedAt: h.PublishedAt,
		})
	}

	return summary, nil
}

// Refresh regenerates and caches the market summary in every language
func (g *Generator) Refresh(ctx context.Context) error {
	for _, language := range []string{LanguageEN, LanguageES} {
		summary, err := g.Generate(ctx, language)
		if err != nil {
			return err
		}

		content, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}

		if err := g.cache.Save(ctx, ReportTypeMarketSummary, language, content); err != nil {
			return err
		}
	}

	logger.Debug("market summary reports refreshed")

	return nil
}

// localize picks the language-appropriate rating label and conclusion
func localize(a *models.StockAnalysis, language string) (rating, sentiment, conclusion *string) {
	var label string
	if language == LanguageES {
		label = a.Rating.LabelES()
		conclusion = a.ConclusionES
	} else {
		label = a.Rating.Label()
		conclusion = a.ConclusionEN
	}

	s := string(a.Sentiment)
	return &label, &s, conclusion
}
