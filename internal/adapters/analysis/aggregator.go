package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Result is one merged fundamentals record with its per-source raw
// payloads retained for audit
type Result struct {
	Merged  *models.Fundamentals
	Raw     map[string]*models.Fundamentals
	Sources []string
}

// Aggregator fetches fundamentals from the primary provider and the
// two supplementary scrapers, then merges them field by field. A failed
// scraper degrades to an empty record; a failed primary fails the
// symbol, since without it the record would be all nulls.
type Aggregator struct {
	primary   Provider
	secondary []Provider
}

// NewAggregator creates new analysis aggregator. Secondary providers
// are positional: the score source (GuruFocus) first, the ratio source
// (StockAnalysis) second.
func NewAggregator(primary Provider, secondary ...Provider) *Aggregator {
	return &Aggregator{
		primary:   primary,
		secondary: secondary,
	}
}

// Fetch returns the merged fundamentals for symbol
func (a *Aggregator) Fetch(ctx context.Context, symbol string) (*Result, error) {
	primary, err := a.primary.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.primary.Name(), err)
	}

	result := &Result{
		Raw:     map[string]*models.Fundamentals{a.primary.Name(): primary},
		Sources: []string{a.primary.Name()},
	}

	records := make([]*models.Fundamentals, len(a.secondary))
	for i, provider := range a.secondary {
		record, err := provider.Fundamentals(ctx, symbol)
		if err != nil {
			logger.Warn("fundamentals provider failed",
				zap.String("provider", provider.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			record = &models.Fundamentals{}
		}

		records[i] = record
		result.Raw[provider.Name()] = record
		result.Sources = append(result.Sources, provider.Name())
	}

	var guru, sa *models.Fundamentals
	if len(records) > 0 {
		guru = records[0]
	}
	if len(records) > 1 {
		sa = records[1]
	}

	result.Merged = Merge(primary, guru, sa)
	return result, nil
}
