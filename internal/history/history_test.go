package history

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

type fakeProvider struct {
	candles []models.Candle
	err     error
}

func (p *fakeProvider) History(ctx context.Context, symbol, period string) ([]models.Candle, error) {
	return p.candles, p.err
}

func candlesWithCloses(closes []float64) []models.Candle {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{Date: base.AddDate(0, 0, i), Close: c}
	}
	return candles
}

func TestService_Fetch(t *testing.T) {
	t.Run("short series has no moving averages", func(t *testing.T) {
		svc := NewService(&fakeProvider{candles: candlesWithCloses([]float64{10, 11, 12})})

		series, err := svc.Fetch(context.Background(), "AAPL", "1y")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(series.Candles) != 3 {
			t.Errorf("expected 3 candles, got %d", len(series.Candles))
		}
		if series.SMA50 != nil || series.SMA200 != nil {
			t.Error("expected nil SMAs for short series")
		}
	})

	t.Run("sma50 over last 50 closes", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = float64(i + 1)
		}

		svc := NewService(&fakeProvider{candles: candlesWithCloses(closes)})

		series, err := svc.Fetch(context.Background(), "AAPL", "1y")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if series.SMA50 == nil {
			t.Fatal("expected SMA50")
		}
		// Mean of 11..60
		if math.Abs(*series.SMA50-35.5) > 1e-9 {
			t.Errorf("expected SMA50 35.5, got %f", *series.SMA50)
		}
		if series.SMA200 != nil {
			t.Error("expected nil SMA200 for 60 closes")
		}
	})
}
