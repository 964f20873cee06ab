package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/analysis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/config"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/database"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/gurufocus"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/market"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/news"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/price"
	redisAdapter "github.com/Jorgecuenca1/market-stock/internal/adapters/redis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/runlog"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/stockanalysis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/yahoo"
	"github.com/Jorgecuenca1/market-stock/internal/history"
	"github.com/Jorgecuenca1/market-stock/internal/sentiment"
	"github.com/Jorgecuenca1/market-stock/internal/updater"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
)

// One-shot update command. Per-symbol errors are reported in the output
// but never change the exit code; only a broken environment (config,
// database) exits non-zero.
func main() {
	updatePrices := flag.Bool("prices", false, "update prices only")
	updateNews := flag.Bool("news", false, "update news only")
	updateAnalysis := flag.Bool("analysis", false, "update analysis only")
	updateAll := flag.Bool("all", false, "update all data (default)")
	runCleanup := flag.Bool("cleanup", false, "delete data older than the retention windows")
	flag.Parse()

	all := *updateAll || !(*updatePrices || *updateNews || *updateAnalysis || *runCleanup)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Conn(), "./migrations"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	symbols, err := config.LoadSymbols(cfg.SymbolsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	marketRepo := market.NewRepository(db.DB())
	if err := marketRepo.InitSymbols(ctx, symbols); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	coordinator := buildCoordinator(cfg, db, marketRepo)

	if all || *updatePrices {
		fmt.Println("Updating prices...")
		report(coordinator.RunPrices(ctx))
	}

	if all || *updateNews {
		fmt.Println("Updating news...")
		report(coordinator.RunNews(ctx))
	}

	if all || *updateAnalysis {
		fmt.Println("Updating analysis...")
		report(coordinator.RunAnalysis(ctx))
	}

	if *runCleanup {
		fmt.Println("Cleaning up old data...")
		if err := coordinator.Cleanup(ctx); err != nil {
			fmt.Printf("  Cleanup error: %v\n", err)
		}
	}

	fmt.Println("Data update completed!")
}

// report prints one run summary. Per-symbol errors are listed, not fatal.
func report(result *updater.Result, err error) {
	if err != nil {
		fmt.Printf("  Skipped: %v\n", err)
		return
	}

	fmt.Printf("  Items: %d, status: %s\n", result.Items, result.Status)
	for _, e := range result.Errors {
		fmt.Printf("  Error: %s\n", e)
	}
}

func buildCoordinator(cfg *config.Config, db *database.DB, marketRepo *market.Repository) *updater.Coordinator {
	yahooClient := yahoo.NewClient()

	var lockFactory updater.LockFactory
	if cfg.Redis.Enabled() {
		if redisClient, err := redisAdapter.New(&cfg.Redis); err == nil {
			lockFactory = func(domain string) updater.DomainLock {
				return redisClient.NewRunLock(domain)
			}
		}
	}

	return updater.NewCoordinator(
		marketRepo,
		price.NewAggregator(yahooClient),
		price.NewRepository(db.DB()),
		news.NewAggregator(sentiment.NewAnalyzer(), yahooClient),
		news.NewRepository(db.DB()),
		analysis.NewAggregator(yahooClient, gurufocus.NewScraper(), stockanalysis.NewScraper()),
		analysis.NewRepository(db.DB()),
		runlog.NewRepository(db.DB()),
		history.NewService(yahooClient),
		updater.NewGuard(lockFactory),
		nil, nil,
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
}
