package updater

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/analysis"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

type fakeSymbols struct {
	stocks  []models.Stock
	indices []models.Index
}

func (f *fakeSymbols) ActiveStocks(ctx context.Context) ([]models.Stock, error) {
	return f.stocks, nil
}

func (f *fakeSymbols) ActiveIndices(ctx context.Context) ([]models.Index, error) {
	return f.indices, nil
}

type fakePrices struct {
	failing map[string]error
	empty   map[string]bool
}

func (f *fakePrices) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err, ok := f.failing[symbol]; ok {
		return nil, err
	}
	if f.empty[symbol] {
		return nil, nil
	}
	price := 100.0
	return &models.Quote{Price: &price, Source: "fake"}, nil
}

func (f *fakePrices) IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error) {
	if err, ok := f.failing[symbol]; ok {
		return nil, err
	}
	if f.empty[symbol] {
		return nil, nil
	}
	level := 5000.0
	return &models.IndexQuote{Level: &level, Source: "fake"}, nil
}

type fakePriceStore struct {
	savedStocks  []int64
	savedIndices []int64
}

func (f *fakePriceStore) SaveStockPrice(ctx context.Context, stockID int64, quote *models.Quote) error {
	f.savedStocks = append(f.savedStocks, stockID)
	return nil
}

func (f *fakePriceStore) SaveIndexPrice(ctx context.Context, indexID int64, quote *models.IndexQuote) error {
	f.savedIndices = append(f.savedIndices, indexID)
	return nil
}

func (f *fakePriceStore) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

type fakeNews struct {
	failing  map[string]error
	articles []models.Article
}

func (f *fakeNews) ForSymbol(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	if err, ok := f.failing[symbol]; ok {
		return nil, err
	}
	return f.articles, nil
}

type fakeNewsStore struct {
	stockArticles  int
	marketArticles int
}

func (f *fakeNewsStore) SaveStockNews(ctx context.Context, stockID int64, articles []models.Article) (int, error) {
	f.stockArticles += len(articles)
	return len(articles), nil
}

func (f *fakeNewsStore) SaveMarketNews(ctx context.Context, articles []models.Article) (int, error) {
	f.marketArticles += len(articles)
	return len(articles), nil
}

func (f *fakeNewsStore) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

type fakeRunLog struct {
	logs []*models.ScrapingLog
}

func (f *fakeRunLog) Save(ctx context.Context, log *models.ScrapingLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeRunLog) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

func newTestCoordinator(symbols *fakeSymbols, prices *fakePrices, priceStore *fakePriceStore, news *fakeNews, newsStore *fakeNewsStore, runLog *fakeRunLog) *Coordinator {
	return NewCoordinator(
		symbols, prices, priceStore, news, newsStore,
		nil, nil, runLog, nil,
		NewGuard(nil), nil, nil,
		Options{MarketNewsSymbols: []string{"^GSPC"}},
	)
}

func TestCoordinator_RunPrices(t *testing.T) {
	stocks := []models.Stock{
		{ID: 1, Symbol: "AAA"},
		{ID: 2, Symbol: "BBB"},
		{ID: 3, Symbol: "CCC"},
	}

	t.Run("one failing symbol does not abort the run", func(t *testing.T) {
		prices := &fakePrices{failing: map[string]error{"BBB": errors.New("quote failed")}}
		store := &fakePriceStore{}
		runLog := &fakeRunLog{}

		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, prices, store, &fakeNews{}, &fakeNewsStore{}, runLog)

		result, err := c.RunPrices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Items != 2 {
			t.Errorf("expected 2 items, got %d", result.Items)
		}
		if result.Status != models.RunPartial {
			t.Errorf("expected partial status, got %s", result.Status)
		}
		if len(result.Errors) != 1 || result.Errors[0] != "BBB: quote failed" {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
		if len(store.savedStocks) != 2 {
			t.Errorf("expected 2 saved stocks, got %d", len(store.savedStocks))
		}

		if len(runLog.logs) != 1 {
			t.Fatalf("expected 1 run log, got %d", len(runLog.logs))
		}
		log := runLog.logs[0]
		if log.ErrorMessage == nil || *log.ErrorMessage != "BBB: quote failed" {
			t.Errorf("unexpected run log error message: %v", log.ErrorMessage)
		}
		if log.ItemsScraped != 2 {
			t.Errorf("expected 2 items scraped, got %d", log.ItemsScraped)
		}
	})

	t.Run("clean run is a success", func(t *testing.T) {
		runLog := &fakeRunLog{}
		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, &fakePrices{}, &fakePriceStore{}, &fakeNews{}, &fakeNewsStore{}, runLog)

		result, err := c.RunPrices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Status != models.RunSuccess {
			t.Errorf("expected success status, got %s", result.Status)
		}
		if runLog.logs[0].ErrorMessage != nil {
			t.Error("expected nil error message on success")
		}
	})

	t.Run("all symbols failing is still a partial run", func(t *testing.T) {
		failing := map[string]error{}
		for _, s := range stocks {
			failing[s.Symbol] = fmt.Errorf("down")
		}

		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, &fakePrices{failing: failing}, &fakePriceStore{}, &fakeNews{}, &fakeNewsStore{}, &fakeRunLog{})

		result, err := c.RunPrices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Items != 0 {
			t.Errorf("expected 0 items, got %d", result.Items)
		}
		if result.Status != models.RunPartial {
			t.Errorf("expected partial status, got %s", result.Status)
		}
	})

	t.Run("symbol without a price is skipped, not failed", func(t *testing.T) {
		prices := &fakePrices{empty: map[string]bool{"BBB": true}}
		store := &fakePriceStore{}
		runLog := &fakeRunLog{}

		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, prices, store, &fakeNews{}, &fakeNewsStore{}, runLog)

		result, err := c.RunPrices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Items != 2 {
			t.Errorf("expected 2 items, got %d", result.Items)
		}
		if len(result.Errors) != 0 {
			t.Errorf("expected no errors, got %v", result.Errors)
		}
		if result.Status != models.RunSuccess {
			t.Errorf("expected success status, got %s", result.Status)
		}
		if runLog.logs[0].ErrorMessage != nil {
			t.Errorf("unexpected run log error message: %v", *runLog.logs[0].ErrorMessage)
		}
	})

	t.Run("indices are counted alongside stocks", func(t *testing.T) {
		symbols := &fakeSymbols{
			stocks:  stocks[:1],
			indices: []models.Index{{ID: 10, Symbol: "^GSPC"}},
		}
		store := &fakePriceStore{}

		c := newTestCoordinator(symbols, &fakePrices{}, store, &fakeNews{}, &fakeNewsStore{}, &fakeRunLog{})

		result, err := c.RunPrices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Items != 2 {
			t.Errorf("expected 2 items, got %d", result.Items)
		}
		if len(store.savedIndices) != 1 {
			t.Errorf("expected 1 saved index, got %d", len(store.savedIndices))
		}
	})
}

func TestCoordinator_RunNews(t *testing.T) {
	stocks := []models.Stock{
		{ID: 1, Symbol: "AAA"},
		{ID: 2, Symbol: "BBB"},
	}
	articles := []models.Article{
		{Headline: "Company reports record quarterly revenue growth"},
	}

	t.Run("stock and market articles counted together", func(t *testing.T) {
		store := &fakeNewsStore{}
		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, &fakePrices{}, &fakePriceStore{}, &fakeNews{articles: articles}, store, &fakeRunLog{})

		result, err := c.RunNews(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 2 stocks + 1 market symbol, 1 article each
		if result.Items != 3 {
			t.Errorf("expected 3 items, got %d", result.Items)
		}
		if store.stockArticles != 2 || store.marketArticles != 1 {
			t.Errorf("unexpected store counts: stock=%d market=%d", store.stockArticles, store.marketArticles)
		}
	})

	t.Run("failed market symbol recorded by symbol", func(t *testing.T) {
		news := &fakeNews{
			articles: articles,
			failing:  map[string]error{"^GSPC": errors.New("feed down")},
		}

		c := newTestCoordinator(&fakeSymbols{stocks: stocks}, &fakePrices{}, &fakePriceStore{}, news, &fakeNewsStore{}, &fakeRunLog{})

		result, err := c.RunNews(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Errors) != 1 || result.Errors[0] != "^GSPC: feed down" {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
		if result.Status != models.RunPartial {
			t.Errorf("expected partial status, got %s", result.Status)
		}
	})
}

type fakeFundamentals struct {
	failing map[string]error
	record  *models.Fundamentals
}

func (f *fakeFundamentals) Fetch(ctx context.Context, symbol string) (*analysis.Result, error) {
	if err, ok := f.failing[symbol]; ok {
		return nil, err
	}
	return &analysis.Result{
		Merged:  f.record,
		Raw:     map[string]*models.Fundamentals{"Yahoo Finance": f.record},
		Sources: []string{"Yahoo Finance"},
	}, nil
}

type fakeAnalysisStore struct {
	saved []*models.StockAnalysis
}

func (f *fakeAnalysisStore) Save(ctx context.Context, a *models.StockAnalysis) error {
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeAnalysisStore) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

func TestCoordinator_RunAnalysis(t *testing.T) {
	stocks := []models.Stock{
		{ID: 1, Symbol: "AAA"},
		{ID: 2, Symbol: "BBB"},
	}

	price := 100.0
	fundamentals := &fakeFundamentals{
		record:  &models.Fundamentals{Price: &price},
		failing: map[string]error{"BBB": errors.New("Yahoo Finance: no data")},
	}
	store := &fakeAnalysisStore{}
	runLog := &fakeRunLog{}

	c := NewCoordinator(
		&fakeSymbols{stocks: stocks}, &fakePrices{}, &fakePriceStore{},
		&fakeNews{}, &fakeNewsStore{},
		fundamentals, store, runLog, nil,
		NewGuard(nil), nil, nil,
		Options{},
	)

	result, err := c.RunAnalysis(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Items != 1 {
		t.Errorf("expected 1 item, got %d", result.Items)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "BBB: Yahoo Finance: no data" {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if result.Status != models.RunPartial {
		t.Errorf("expected partial status, got %s", result.Status)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved analysis, got %d", len(store.saved))
	}
	saved := store.saved[0]
	if saved.StockID != 1 {
		t.Errorf("expected stock id 1, got %d", saved.StockID)
	}
	// Price only, nothing scores: HOLD with neutral sentiment
	if saved.Rating != models.RatingHold {
		t.Errorf("expected HOLD, got %s", saved.Rating)
	}
	if saved.Sentiment != models.SentimentNeutral {
		t.Errorf("expected NEUTRAL, got %s", saved.Sentiment)
	}
	if saved.ConclusionEN == nil || *saved.ConclusionEN != "HOLD: Metrics within normal ranges." {
		t.Errorf("unexpected conclusion: %v", saved.ConclusionEN)
	}
}

func TestCoordinator_SingleFlight(t *testing.T) {
	stocks := []models.Stock{{ID: 1, Symbol: "AAA"}}
	c := newTestCoordinator(&fakeSymbols{stocks: stocks}, &fakePrices{}, &fakePriceStore{}, &fakeNews{}, &fakeNewsStore{}, &fakeRunLog{})

	release, err := c.guard.Acquire(context.Background(), string(models.TaskPrice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.RunPrices(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	release()

	if _, err := c.RunPrices(context.Background()); err != nil {
		t.Errorf("expected run after release, got %v", err)
	}
}
