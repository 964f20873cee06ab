package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/analysis"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/database"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/market"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/news"
	"github.com/Jorgecuenca1/market-stock/internal/adapters/price"
	"github.com/Jorgecuenca1/market-stock/internal/history"
	"github.com/Jorgecuenca1/market-stock/internal/reports"
	"github.com/Jorgecuenca1/market-stock/internal/updater"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
)

// Server exposes the read API over persisted data and the manual update
// triggers. It carries no pipeline logic of its own.
type Server struct {
	server      *http.Server
	db          *database.DB
	market      *market.Repository
	prices      *price.Repository
	news        *news.Repository
	analyses    *analysis.Repository
	histories   *history.Service
	reports     *reports.Repository
	coordinator *updater.Coordinator
	startTime   time.Time
}

// NewServer creates new API server listening on addr
func NewServer(
	addr string,
	db *database.DB,
	marketRepo *market.Repository,
	priceRepo *price.Repository,
	newsRepo *news.Repository,
	analysisRepo *analysis.Repository,
	historySvc *history.Service,
	reportRepo *reports.Repository,
	coordinator *updater.Coordinator,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		db:          db,
		market:      marketRepo,
		prices:      priceRepo,
		news:        newsRepo,
		analyses:    analysisRepo,
		histories:   historySvc,
		reports:     reportRepo,
		coordinator: coordinator,
		startTime:   time.Now(),
	}

	mux.HandleFunc("/api/prices", s.handlePrices)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/api/reports/market", s.handleMarketReport)
	mux.HandleFunc("/api/update/prices", s.handleUpdate)
	mux.HandleFunc("/api/update/news", s.handleUpdate)
	mux.HandleFunc("/api/update/analysis", s.handleUpdate)
	mux.HandleFunc("/api/update/all", s.handleUpdate)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return s
}

// Start starts the API server
func (s *Server) Start() error {
	logger.Info("api server starting",
		zap.String("addr", s.server.Addr),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping api server...")
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
