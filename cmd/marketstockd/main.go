package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/analysis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/clickhouse"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/config"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/database"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/gurufocus"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/market"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/news"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/price"
	redisAdapter "github.com/Jorgecuenca1/market-stock/internal/adapters/redis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/runlog"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/stockanalysis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/telegram"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/yahoo"
	"github.com/Jorgecuenca1/market-stock/internal/api"
	"github.com/Jorgecuenca1/market-stock/internal/history"
	"github.com/Jorgecuenca1/market-stock/internal/reports"
	"github.com/Jorgecuenca1/market-stock/internal/sentiment"
	"github.com/Jorgecuenca1/market-stock/internal/updater"
	"github.com/Jorgecuenca1/market-stock/internal/workers"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("market-stock service starting...")

	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	marketRepo, err := initSymbols(ctx, cfg, db)
	if err != nil {
		return err
	}

	redisClient := initRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	archive := initArchive(cfg)
	if archive != nil {
		defer archive.Close()
	}

	notifier := initTelegram(cfg)

	coordinator, deps := buildPipeline(cfg, db, marketRepo, redisClient, archive, notifier)

	reportsRepo := reports.NewRepository(db.DB())
	reportsGen := reports.NewGenerator(marketRepo, deps.priceRepo, deps.analysisRepo, deps.newsRepo, reportsRepo)

	group := worker.NewWorkerGroup(ctx)
	group.Add(workers.NewPriceWorker(coordinator), cfg.Update.PriceInterval)
	group.Add(workers.NewNewsWorker(coordinator), cfg.Update.NewsInterval)
	group.Add(workers.NewAnalysisWorker(coordinator, reportsGen), cfg.Update.AnalysisInterval)
	group.Add(workers.NewCleanupWorker(coordinator), cfg.Update.CleanupInterval)
	group.Start()

	apiServer := api.NewServer(
		cfg.API.Addr, db, marketRepo,
		deps.priceRepo, deps.newsRepo, deps.analysisRepo,
		deps.historySvc, reportsRepo, coordinator,
	)

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("api server error", zap.Error(err))
		}
	}()

	if notifier != nil {
		stocks, _ := marketRepo.ActiveStocks(ctx)
		indices, _ := marketRepo.ActiveIndices(ctx)
		notifier.NotifyStartup(len(stocks), len(indices))
	}

	logger.Info("market-stock service ready",
		zap.String("api_addr", cfg.API.Addr),
		zap.Duration("price_interval", cfg.Update.PriceInterval),
		zap.Duration("news_interval", cfg.Update.NewsInterval),
		zap.Duration("analysis_interval", cfg.Update.AnalysisInterval),
	)

	<-ctx.Done()

	logger.Info("shutdown signal received, stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer shutdownCancel()

	group.Stop(20 * time.Second)

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("api server stop error", zap.Error(err))
	}

	logger.Info("shutdown completed")
	return nil
}

// pipelineDeps holds the repositories shared between the coordinator,
// the API server and the report generator
type pipelineDeps struct {
	priceRepo    *price.Repository
	newsRepo     *news.Repository
	analysisRepo *analysis.Repository
	historySvc   *history.Service
}

// buildPipeline wires providers, aggregators and repositories into the
// update coordinator
func buildPipeline(
	cfg *config.Config,
	db *database.DB,
	marketRepo *market.Repository,
	redisClient *redisAdapter.Client,
	archive *clickhouse.Archive,
	notifier *telegram.Notifier,
) (*updater.Coordinator, *pipelineDeps) {
	yahooClient := yahoo.NewClient()

	priceAggregator := price.NewAggregator(yahooClient)
	priceRepo := price.NewRepository(db.DB())

	newsAggregator := news.NewAggregator(sentiment.NewAnalyzer(), yahooClient)
	newsRepo := news.NewRepository(db.DB())

	fundamentals := analysis.NewAggregator(yahooClient, gurufocus.NewScraper(), stockanalysis.NewScraper())
	analysisRepo := analysis.NewRepository(db.DB())

	runLogRepo := runlog.NewRepository(db.DB())
	historySvc := history.NewService(yahooClient)

	var lockFactory updater.LockFactory
	if redisClient != nil {
		lockFactory = func(domain string) updater.DomainLock {
			return redisClient.NewRunLock(domain)
		}
	}

	var archiver updater.Archiver
	if archive != nil {
		archiver = archive
	}

	var alerter updater.Alerter
	if notifier != nil {
		alerter = notifier
	}

	coordinator := updater.NewCoordinator(
		marketRepo,
		priceAggregator, priceRepo,
		newsAggregator, newsRepo,
		fundamentals, analysisRepo,
		runLogRepo, historySvc,
		updater.NewGuard(lockFactory),
		archiver, alerter,
		updater.Options{
			MarketNewsSymbols: cfg.Update.MarketNewsSymbols,
			Retention: updater.Retention{
				PriceDays:    cfg.Retention.PriceDays,
				LogDays:      cfg.Retention.LogDays,
				NewsDays:     cfg.Retention.NewsDays,
				AnalysisDays: cfg.Retention.AnalysisDays,
			},
		},
	)

	return coordinator, &pipelineDeps{
		priceRepo:    priceRepo,
		newsRepo:     newsRepo,
		analysisRepo: analysisRepo,
		historySvc:   historySvc,
	}
}

// initConfig loads configuration and initializes logger
func initConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// initDatabase initializes the database connection and runs migrations
func initDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db.Conn(), "./migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	return db, nil
}

// initSymbols loads the symbols file and reconciles the tracked universe
func initSymbols(ctx context.Context, cfg *config.Config, db *database.DB) (*market.Repository, error) {
	symbols, err := config.LoadSymbols(cfg.SymbolsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load symbols file: %w", err)
	}

	marketRepo := market.NewRepository(db.DB())
	if err := marketRepo.InitSymbols(ctx, symbols); err != nil {
		return nil, fmt.Errorf("failed to initialize symbols: %w", err)
	}

	logger.Info("symbol universe initialized",
		zap.Int("stocks", len(symbols.Stocks)),
		zap.Int("indices", len(symbols.Indices)),
	)

	return marketRepo, nil
}

// initRedis initializes the optional Redis run-lock client
func initRedis(cfg *config.Config) *redisAdapter.Client {
	if !cfg.Redis.Enabled() {
		logger.Info("redis run lock disabled (no host configured)")
		return nil
	}

	redisClient, err := redisAdapter.New(&cfg.Redis)
	if err != nil {
		logger.Warn("redis not available, using in-process run lock only", zap.Error(err))
		return nil
	}

	return redisClient
}

// initArchive initializes the optional ClickHouse price archive
func initArchive(cfg *config.Config) *clickhouse.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}

	archive, err := clickhouse.NewArchive(&cfg.Archive)
	if err != nil {
		logger.Warn("clickhouse archive not available, prices kept in postgres only", zap.Error(err))
		return nil
	}

	return archive
}

// initTelegram initializes the optional run alert notifier
func initTelegram(cfg *config.Config) *telegram.Notifier {
	if !cfg.Telegram.Enabled() {
		logger.Info("telegram alerts disabled")
		return nil
	}

	notifier, err := telegram.NewNotifier(&cfg.Telegram)
	if err != nil {
		logger.Warn("failed to initialize telegram notifier", zap.Error(err))
		return nil
	}

	return notifier
}
