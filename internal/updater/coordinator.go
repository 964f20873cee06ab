package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/analysis"
	"github.com/Jorgecuenca1/market-stock/internal/history"
	"github.com/Jorgecuenca1/market-stock/internal/scoring"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// SymbolSource provides the active symbol universe
type SymbolSource interface {
	ActiveStocks(ctx context.Context) ([]models.Stock, error)
	ActiveIndices(ctx context.Context) ([]models.Index, error)
}

// PriceSource fetches live quotes
type PriceSource interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error)
}

// PriceStore persists price points
type PriceStore interface {
	SaveStockPrice(ctx context.Context, stockID int64, quote *models.Quote) error
	SaveIndexPrice(ctx context.Context, indexID int64, quote *models.IndexQuote) error
	CleanupOld(ctx context.Context, retentionDays int) (int64, error)
}

// NewsSource fetches filtered, deduplicated articles for a symbol
type NewsSource interface {
	ForSymbol(ctx context.Context, symbol string, limit int) ([]models.Article, error)
}

// NewsStore persists articles
type NewsStore interface {
	SaveStockNews(ctx context.Context, stockID int64, articles []models.Article) (int, error)
	SaveMarketNews(ctx context.Context, articles []models.Article) (int, error)
	CleanupOld(ctx context.Context, retentionDays int) (int64, error)
}

// FundamentalsSource fetches merged fundamentals for a symbol
type FundamentalsSource interface {
	Fetch(ctx context.Context, symbol string) (*analysis.Result, error)
}

// AnalysisStore persists analysis snapshots
type AnalysisStore interface {
	Save(ctx context.Context, a *models.StockAnalysis) error
	CleanupOld(ctx context.Context, retentionDays int) (int64, error)
}

// RunLogStore persists the run audit log
type RunLogStore interface {
	Save(ctx context.Context, log *models.ScrapingLog) error
	CleanupOld(ctx context.Context, retentionDays int) (int64, error)
}

// HistorySource provides candle history with moving averages, used when
// the fundamentals record lacks the 50/200-day averages
type HistorySource interface {
	Fetch(ctx context.Context, symbol, period string) (*history.Series, error)
}

// Archiver mirrors price points into long-term storage
type Archiver interface {
	ArchiveStockPrice(ctx context.Context, symbol string, quote *models.Quote) error
	ArchiveIndexPrice(ctx context.Context, symbol string, quote *models.IndexQuote) error
}

// Alerter pages the operator about finished runs
type Alerter interface {
	NotifyRun(log *models.ScrapingLog)
}

// Retention holds per-table cleanup windows in days
type Retention struct {
	PriceDays    int
	LogDays      int
	NewsDays     int
	AnalysisDays int
}

// Options configures coordinator limits and retention
type Options struct {
	MarketNewsSymbols []string
	StockNewsLimit    int
	MarketNewsLimit   int
	Retention         Retention
}

// Result summarizes one coordinator run
type Result struct {
	TaskType models.TaskType
	Status   models.RunStatus
	Items    int
	Errors   []string
	Duration time.Duration
}

// Coordinator drives the update domains over the active symbol universe.
// A failing symbol never aborts the run; its error is recorded and the
// loop continues with the next symbol.
type Coordinator struct {
	symbols      SymbolSource
	prices       PriceSource
	priceStore   PriceStore
	news         NewsSource
	newsStore    NewsStore
	fundamentals FundamentalsSource
	analysisRepo AnalysisStore
	runLog       RunLogStore
	histories    HistorySource
	guard        *Guard
	archive      Archiver
	alerts       Alerter
	opts         Options
}

// NewCoordinator creates new update coordinator. archive and alerts may
// be nil; histories may be nil to disable the moving-average fallback.
func NewCoordinator(
	symbols SymbolSource,
	prices PriceSource,
	priceStore PriceStore,
	news NewsSource,
	newsStore NewsStore,
	fundamentals FundamentalsSource,
	analysisRepo AnalysisStore,
	runLog RunLogStore,
	histories HistorySource,
	guard *Guard,
	archive Archiver,
	alerts Alerter,
	opts Options,
) *Coordinator {
	if opts.StockNewsLimit <= 0 {
		opts.StockNewsLimit = 15
	}
	if opts.MarketNewsLimit <= 0 {
		opts.MarketNewsLimit = 10
	}
	if len(opts.MarketNewsSymbols) == 0 {
		opts.MarketNewsSymbols = []string{"^GSPC", "^DJI", "^IXIC"}
	}

	return &Coordinator{
		symbols:      symbols,
		prices:       prices,
		priceStore:   priceStore,
		news:         news,
		newsStore:    newsStore,
		fundamentals: fundamentals,
		analysisRepo: analysisRepo,
		runLog:       runLog,
		histories:    histories,
		guard:        guard,
		archive:      archive,
		alerts:       alerts,
		opts:         opts,
	}
}

// RunPrices updates prices for every active stock and index
func (c *Coordinator) RunPrices(ctx context.Context) (*Result, error) {
	release, err := c.guard.Acquire(ctx, string(models.TaskPrice))
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	result := &Result{TaskType: models.TaskPrice}

	stocks, err := c.symbols.ActiveStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	for _, stock := range stocks {
		quote, err := c.prices.Quote(ctx, stock.Symbol)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", stock.Symbol, err.Error()))
			continue
		}
		if quote == nil || quote.Price == nil {
			// No provider had a price; not an error
			continue
		}

		if err := c.priceStore.SaveStockPrice(ctx, stock.ID, quote); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", stock.Symbol, err.Error()))
			continue
		}

		if c.archive != nil {
			if err := c.archive.ArchiveStockPrice(ctx, stock.Symbol, quote); err != nil {
				logger.Warn("failed to archive stock price",
					zap.String("symbol", stock.Symbol),
					zap.Error(err),
				)
			}
		}

		result.Items++
	}

	indices, err := c.symbols.ActiveIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indices: %w", err)
	}

	for _, index := range indices {
		quote, err := c.prices.IndexQuote(ctx, index.Symbol)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", index.Symbol, err.Error()))
			continue
		}
		if quote == nil || quote.Level == nil {
			continue
		}

		if err := c.priceStore.SaveIndexPrice(ctx, index.ID, quote); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", index.Symbol, err.Error()))
			continue
		}

		if c.archive != nil {
			if err := c.archive.ArchiveIndexPrice(ctx, index.Symbol, quote); err != nil {
				logger.Warn("failed to archive index price",
					zap.String("symbol", index.Symbol),
					zap.Error(err),
				)
			}
		}

		result.Items++
	}

	c.finishRun(ctx, result, "price_aggregator", start)
	return result, nil
}

// RunNews updates stock news for every active stock, then market-wide
// news from the major index symbols
func (c *Coordinator) RunNews(ctx context.Context) (*Result, error) {
	release, err := c.guard.Acquire(ctx, string(models.TaskNews))
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	result := &Result{TaskType: models.TaskNews}

	stocks, err := c.symbols.ActiveStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	for _, stock := range stocks {
		articles, err := c.news.ForSymbol(ctx, stock.Symbol, c.opts.StockNewsLimit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", stock.Symbol, err.Error()))
			continue
		}

		saved, err := c.newsStore.SaveStockNews(ctx, stock.ID, articles)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", stock.Symbol, err.Error()))
			continue
		}

		result.Items += saved
	}

	for _, symbol := range c.opts.MarketNewsSymbols {
		articles, err := c.news.ForSymbol(ctx, symbol, c.opts.MarketNewsLimit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", symbol, err.Error()))
			continue
		}

		saved, err := c.newsStore.SaveMarketNews(ctx, articles)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", symbol, err.Error()))
			continue
		}

		result.Items += saved
	}

	c.finishRun(ctx, result, "news_aggregator", start)
	return result, nil
}

// RunAnalysis refreshes the fundamentals analysis for every active stock
func (c *Coordinator) RunAnalysis(ctx context.Context) (*Result, error) {
	release, err := c.guard.Acquire(ctx, string(models.TaskAnalysis))
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	result := &Result{TaskType: models.TaskAnalysis}

	stocks, err := c.symbols.ActiveStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	for _, stock := range stocks {
		if err := c.analyzeStock(ctx, &stock); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", stock.Symbol, err.Error()))
			continue
		}
		result.Items++
	}

	c.finishRun(ctx, result, "analysis_aggregator", start)
	return result, nil
}

// RunAll runs prices, news and analysis in sequence. A busy domain is
// skipped, not treated as a failure.
func (c *Coordinator) RunAll(ctx context.Context) ([]*Result, error) {
	runs := []func(context.Context) (*Result, error){
		c.RunPrices,
		c.RunNews,
		c.RunAnalysis,
	}

	results := make([]*Result, 0, len(runs))
	for _, run := range runs {
		result, err := run(ctx)
		if errors.Is(err, ErrAlreadyRunning) {
			continue
		}
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (c *Coordinator) analyzeStock(ctx context.Context, stock *models.Stock) error {
	fetched, err := c.fundamentals.Fetch(ctx, stock.Symbol)
	if err != nil {
		return err
	}

	merged := fetched.Merged

	metrics := &scoring.Metrics{
		PEGRatio:             merged.PEGRatio,
		PEForward:            merged.PEForward,
		PETrailing:           merged.PETrailing,
		DebtToEquity:         merged.DebtToEquity,
		ROE:                  analysis.ToPercent(merged.ROE),
		CurrentRatio:         merged.CurrentRatio,
		NetMargin:            analysis.ToPercent(merged.ProfitMargin),
		GrossMargin:          analysis.ToPercent(merged.GrossMargin),
		DividendYield:        analysis.ToPercent(merged.DividendYield),
		AnalystRating:        merged.RecommendationKey,
		Price:                merged.Price,
		FiftyDayAverage:      merged.FiftyDayAverage,
		TwoHundredDayAverage: merged.TwoHundredDayAverage,
	}

	c.fillMovingAverages(ctx, stock.Symbol, metrics)

	rating := scoring.Rate(metrics)
	sentiment := scoring.Sentiment(metrics, rating)
	conclusionEN := scoring.ConclusionEN(metrics, rating)
	conclusionES := scoring.ConclusionES(metrics, rating)

	sources, _ := json.Marshal(fetched.Sources)
	rawData, _ := json.Marshal(fetched.Raw)

	record := &models.StockAnalysis{
		StockID:          stock.ID,
		Price:            merged.Price,
		MarketCap:        analysis.FormatLargeNumber(merged.MarketCap),
		PETrailing:       merged.PETrailing,
		PEForward:        merged.PEForward,
		PEGRatio:         merged.PEGRatio,
		DebtEquity:       merged.DebtToEquity,
		CurrentRatio:     merged.CurrentRatio,
		QuickRatio:       merged.QuickRatio,
		InterestCoverage: merged.InterestCoverage,
		Cash:             analysis.FormatLargeNumber(merged.TotalCash),
		TotalDebt:        analysis.FormatLargeNumber(merged.TotalDebt),
		NetCash:          analysis.NetCash(merged.TotalCash, merged.TotalDebt),
		FreeCashFlow:     analysis.FormatLargeNumber(merged.FreeCashFlow),
		GrossMargin:      metrics.GrossMargin,
		OperatingMargin:  analysis.ToPercent(merged.OperatingMargin),
		NetMargin:        metrics.NetMargin,
		ROE:              metrics.ROE,
		DividendYield:    metrics.DividendYield,
		GFScore:          merged.GFScore,
		AltmanZScore:     merged.AltmanZScore,
		PiotroskiScore:   merged.PiotroskiScore,
		PriceTarget:      analysis.FormatPriceTarget(merged.TargetMeanPrice, merged.Price),
		AnalystRating:    merged.RecommendationKey,
		ConclusionEN:     &conclusionEN,
		ConclusionES:     &conclusionES,
		Rating:           rating,
		Sentiment:        sentiment,
		Sources:          sources,
		RawData:          rawData,
	}

	return c.analysisRepo.Save(ctx, record)
}

// fillMovingAverages derives missing 50/200-day averages from candle
// history so the momentum signal still works when the fundamentals
// record lacks them
func (c *Coordinator) fillMovingAverages(ctx context.Context, symbol string, m *scoring.Metrics) {
	if c.histories == nil {
		return
	}
	if m.FiftyDayAverage != nil && m.TwoHundredDayAverage != nil {
		return
	}

	series, err := c.histories.Fetch(ctx, symbol, "1y")
	if err != nil {
		logger.Debug("history fallback unavailable",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return
	}

	if m.FiftyDayAverage == nil {
		m.FiftyDayAverage = series.SMA50
	}
	if m.TwoHundredDayAverage == nil {
		m.TwoHundredDayAverage = series.SMA200
	}
}

// Cleanup deletes rows older than each retention window
func (c *Coordinator) Cleanup(ctx context.Context) error {
	type job struct {
		name string
		days int
		run  func(context.Context, int) (int64, error)
	}

	jobs := []job{
		{"prices", c.opts.Retention.PriceDays, c.priceStore.CleanupOld},
		{"news", c.opts.Retention.NewsDays, c.newsStore.CleanupOld},
		{"analyses", c.opts.Retention.AnalysisDays, c.analysisRepo.CleanupOld},
		{"run logs", c.opts.Retention.LogDays, c.runLog.CleanupOld},
	}

	for _, j := range jobs {
		deleted, err := j.run(ctx, j.days)
		if err != nil {
			return fmt.Errorf("cleanup of %s failed: %w", j.name, err)
		}

		logger.Info("cleanup completed",
			zap.String("table", j.name),
			zap.Int("retention_days", j.days),
			zap.Int64("deleted", deleted),
		)
	}

	return nil
}

// finishRun derives the run status, writes the audit row and fires the
// optional alert
func (c *Coordinator) finishRun(ctx context.Context, result *Result, source string, start time.Time) {
	result.Duration = time.Since(start)

	// A completed run is success or partial; failed is reserved for
	// runs that never finish
	if len(result.Errors) == 0 {
		result.Status = models.RunSuccess
	} else {
		result.Status = models.RunPartial
	}

	duration := result.Duration.Seconds()
	log := &models.ScrapingLog{
		Source:          source,
		TaskType:        result.TaskType,
		Status:          result.Status,
		ItemsScraped:    result.Items,
		DurationSeconds: &duration,
	}

	if len(result.Errors) > 0 {
		joined := strings.Join(result.Errors, "\n")
		log.ErrorMessage = &joined
	}

	if err := c.runLog.Save(ctx, log); err != nil {
		logger.Error("failed to save run log",
			zap.String("task_type", string(result.TaskType)),
			zap.Error(err),
		)
	}

	logger.Info("update run finished",
		zap.String("task_type", string(result.TaskType)),
		zap.String("status", string(result.Status)),
		zap.Int("items", result.Items),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("duration", result.Duration),
	)

	if c.alerts != nil {
		c.alerts.NotifyRun(log)
	}
}
