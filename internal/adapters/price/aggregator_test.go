package price

import (
	"context"
	"errors"
	"testing"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

type fakeProvider struct {
	name  string
	quote *models.Quote
	index *models.IndexQuote
	err   error
}

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	return f.quote, f.err
}

func (f *fakeProvider) IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error) {
	return f.index, f.err
}

func (f *fakeProvider) Name() string { return f.name }

func floatPtr(v float64) *float64 { return &v }

func TestAggregator_Quote(t *testing.T) {
	t.Run("first provider with a price wins", func(t *testing.T) {
		agg := NewAggregator(
			&fakeProvider{name: "down", err: errors.New("timeout")},
			&fakeProvider{name: "up", quote: &models.Quote{Price: floatPtr(101.5), Source: "up"}},
		)

		quote, err := agg.Quote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote == nil || quote.Source != "up" {
			t.Fatalf("expected quote from second provider, got %+v", quote)
		}
	})

	t.Run("quote without a price is unavailable, not an error", func(t *testing.T) {
		agg := NewAggregator(
			&fakeProvider{name: "sparse", quote: &models.Quote{Source: "sparse"}},
		)

		quote, err := agg.Quote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("expected no error for missing price, got %v", err)
		}
		if quote != nil {
			t.Errorf("expected nil quote, got %+v", quote)
		}
	})

	t.Run("all providers failing is unavailable, not an error", func(t *testing.T) {
		agg := NewAggregator(
			&fakeProvider{name: "a", err: errors.New("timeout")},
			&fakeProvider{name: "b", err: errors.New("timeout")},
		)

		quote, err := agg.Quote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if quote != nil {
			t.Errorf("expected nil quote, got %+v", quote)
		}
	})

	t.Run("winning quote backfills gaps from later providers", func(t *testing.T) {
		var volume int64 = 12345
		agg := NewAggregator(
			&fakeProvider{name: "first", quote: &models.Quote{Price: floatPtr(100), Source: "first"}},
			&fakeProvider{name: "second", quote: &models.Quote{Price: floatPtr(99), Volume: &volume, Source: "second"}},
		)

		quote, err := agg.Quote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.Source != "first" || *quote.Price != 100 {
			t.Fatalf("expected first provider to win, got %+v", quote)
		}
		if quote.Volume == nil || *quote.Volume != volume {
			t.Errorf("expected volume backfilled from second provider, got %v", quote.Volume)
		}
	})
}

func TestAggregator_IndexQuote(t *testing.T) {
	t.Run("level without data is unavailable, not an error", func(t *testing.T) {
		agg := NewAggregator(
			&fakeProvider{name: "sparse", index: &models.IndexQuote{Source: "sparse"}},
		)

		quote, err := agg.IndexQuote(context.Background(), "^GSPC")
		if err != nil {
			t.Fatalf("expected no error for missing level, got %v", err)
		}
		if quote != nil {
			t.Errorf("expected nil index quote, got %+v", quote)
		}
	})

	t.Run("first provider with a level wins", func(t *testing.T) {
		agg := NewAggregator(
			&fakeProvider{name: "down", err: errors.New("timeout")},
			&fakeProvider{name: "up", index: &models.IndexQuote{Level: floatPtr(5000), Source: "up"}},
		)

		quote, err := agg.IndexQuote(context.Background(), "^GSPC")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote == nil || quote.Source != "up" {
			t.Fatalf("expected level from second provider, got %+v", quote)
		}
	})
}
