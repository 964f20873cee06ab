package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/internal/reports"
	"github.com/Jorgecuenca1/market-stock/internal/updater"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

type stockPriceEntry struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	Price         float64  `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	Volume        *int64   `json:"volume"`
	MarketCap     *float64 `json:"market_cap"`
	Timestamp     string   `json:"timestamp"`
}

type indexPriceEntry struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Level         float64  `json:"level"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	Timestamp     string   `json:"timestamp"`
}

// handlePrices returns the latest persisted price per active symbol
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	stocks, err := s.market.ActiveStocks(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stocksData := make([]stockPriceEntry, 0, len(stocks))
	for _, stock := range stocks {
		prices, err := s.prices.LatestStockPrices(ctx, stock.ID, 1)
		if err != nil {
			logger.Warn("failed to load latest price",
				zap.String("symbol", stock.Symbol),
				zap.Error(err),
			)
			continue
		}
		if len(prices) == 0 {
			continue
		}

		p := prices[0]
		value, _ := p.Price.Float64()
		stocksData = append(stocksData, stockPriceEntry{
			Symbol:        stock.Symbol,
			Name:          stock.Name,
			Sector:        stock.Sector,
			Price:         value,
			Change:        decToFloat(p.Change),
			ChangePercent: decToFloat(p.ChangePercent),
			Volume:        p.Volume,
			MarketCap:     decToFloat(p.MarketCap),
			Timestamp:     p.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	indices, err := s.market.ActiveIndices(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	indicesData := make([]indexPriceEntry, 0, len(indices))
	for _, index := range indices {
		level, err := s.prices.LatestIndexPrice(ctx, index.ID)
		if err != nil || level == nil {
			continue
		}

		value, _ := level.Level.Float64()
		indicesData = append(indicesData, indexPriceEntry{
			Symbol:        index.Symbol,
			Name:          index.Name,
			Level:         value,
			Change:        decToFloat(level.Change),
			ChangePercent: decToFloat(level.ChangePercent),
			Timestamp:     level.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stocks":    stocksData,
		"indices":   indicesData,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleNews returns recent stock news, optionally for one symbol
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	symbol := strings.ToUpper(r.URL.Query().Get("symbol"))

	var (
		articles []models.StockNews
		symbols  map[int64]string
	)

	if symbol != "" {
		stock, err := s.market.StockBySymbol(ctx, symbol)
		if err != nil {
			writeError(w, http.StatusNotFound, "stock not found")
			return
		}

		articles, err = s.news.RecentStockNews(ctx, stock.ID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		symbols = map[int64]string{stock.ID: stock.Symbol}
	} else {
		stocks, err := s.market.ActiveStocks(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		symbols = make(map[int64]string, len(stocks))
		for _, stock := range stocks {
			symbols[stock.ID] = stock.Symbol
		}

		articles, err = s.news.RecentNews(ctx, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	newsData := make([]map[string]interface{}, 0, len(articles))
	for _, article := range articles {
		var publishedAt *string
		if article.PublishedAt != nil {
			ts := article.PublishedAt.UTC().Format(time.RFC3339)
			publishedAt = &ts
		}

		newsData = append(newsData, map[string]interface{}{
			"symbol":       symbols[article.StockID],
			"headline":     article.Headline,
			"headline_es":  article.HeadlineES,
			"summary":      article.Summary,
			"summary_es":   article.SummaryES,
			"url":          article.URL,
			"source":       article.Source,
			"sentiment":    article.Sentiment,
			"published_at": publishedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"news":      newsData,
		"count":     len(newsData),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type analysisEntry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	*models.StockAnalysis
}

// handleAnalysis returns the latest analysis per stock
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	var stocks []models.Stock
	if symbol := strings.ToUpper(r.URL.Query().Get("symbol")); symbol != "" {
		stock, err := s.market.StockBySymbol(ctx, symbol)
		if err != nil {
			writeError(w, http.StatusNotFound, "stock not found")
			return
		}
		stocks = []models.Stock{*stock}
	} else {
		var err error
		stocks, err = s.market.ActiveStocks(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	analyses := make([]analysisEntry, 0, len(stocks))
	for _, stock := range stocks {
		latest, err := s.analyses.Latest(ctx, stock.ID)
		if err != nil {
			logger.Warn("failed to load latest analysis",
				zap.String("symbol", stock.Symbol),
				zap.Error(err),
			)
			continue
		}
		if latest == nil {
			continue
		}

		analyses = append(analyses, analysisEntry{
			Symbol:        stock.Symbol,
			Name:          stock.Name,
			Sector:        stock.Sector,
			StockAnalysis: latest,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analyses":  analyses,
		"count":     len(analyses),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHistory returns the candle series with moving averages for one
// symbol
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	symbol := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/api/history/"))
	if symbol == "" || strings.Contains(symbol, "/") {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}

	series, err := s.histories.Fetch(r.Context(), symbol, period)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// handleMarketReport serves the cached market summary report
func (s *Server) handleMarketReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	report, err := s.reports.Get(r.Context(), reports.ReportTypeMarketSummary, lang)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not generated yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(report.Content)
}

// handleUpdate triggers a manual update run for one domain. A domain
// already running returns 409.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	domain := strings.TrimPrefix(r.URL.Path, "/api/update/")

	var (
		results interface{}
		err     error
	)

	switch domain {
	case "prices":
		results, err = s.coordinator.RunPrices(ctx)
	case "news":
		results, err = s.coordinator.RunNews(ctx)
	case "analysis":
		results, err = s.coordinator.RunAnalysis(ctx)
	case "all":
		results, err = s.coordinator.RunAll(ctx)
	default:
		writeError(w, http.StatusNotFound, "unknown update domain")
		return
	}

	if errors.Is(err, updater.ErrAlreadyRunning) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status":  "busy",
			"message": "update already running for this domain",
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": results,
	})
}

// handleHealthz reports liveness; dependency checks with ?verbose=true
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
	}

	if r.URL.Query().Get("verbose") == "true" {
		checks := make(map[string]string)
		if err := s.db.Health(); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}
		status["checks"] = checks
	}

	writeJSON(w, http.StatusOK, status)
}

func decToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v, _ := d.Float64()
	return &v
}
