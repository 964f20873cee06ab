package history

import (
	"context"
	"fmt"

	"github.com/cinar/indicator"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Provider fetches historical daily candles for one symbol
type Provider interface {
	History(ctx context.Context, symbol, period string) ([]models.Candle, error)
}

// Series is one symbol's daily close history with its moving averages.
// SMA values are nil when the series is shorter than the window.
type Series struct {
	Symbol  string          `json:"symbol"`
	Period  string          `json:"period"`
	Candles []models.Candle `json:"candles"`
	SMA50   *float64        `json:"sma_50,omitempty"`
	SMA200  *float64        `json:"sma_200,omitempty"`
}

// Service fetches candle history and derives moving averages
type Service struct {
	provider Provider
}

// NewService creates history service
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Fetch returns the candle series with SMA50 and SMA200 over the closes
func (s *Service) Fetch(ctx context.Context, symbol, period string) (*Series, error) {
	candles, err := s.provider.History(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}

	series := &Series{
		Symbol:  symbol,
		Period:  period,
		Candles: candles,
	}

	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = candle.Close
	}

	series.SMA50 = lastSMA(50, closes)
	series.SMA200 = lastSMA(200, closes)

	return series, nil
}

// lastSMA returns the most recent simple moving average, or nil when
// fewer closes than the window exist
func lastSMA(period int, closes []float64) *float64 {
	if len(closes) < period {
		return nil
	}

	sma := indicator.Sma(period, closes)
	if len(sma) == 0 {
		return nil
	}

	v := sma[len(sma)-1]
	return &v
}
