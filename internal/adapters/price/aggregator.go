package price

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Aggregator queries providers in priority order and returns the first
// usable quote, filling fields the winning provider left nil from the
// ones behind it.
type Aggregator struct {
	providers []Provider
}

// NewAggregator creates new price aggregator
func NewAggregator(providers ...Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Quote returns the merged stock quote for symbol, or nil without
// error when no provider has a price
func (a *Aggregator) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var merged *models.Quote

	for _, provider := range a.providers {
		quote, err := provider.Quote(ctx, symbol)
		if err != nil {
			logger.Warn("price provider failed",
				zap.String("provider", provider.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			continue
		}
		if quote == nil || quote.Price == nil {
			continue
		}

		if merged == nil {
			merged = quote
			continue
		}

		if merged.Change == nil {
			merged.Change = quote.Change
		}
		if merged.ChangePercent == nil {
			merged.ChangePercent = quote.ChangePercent
		}
		if merged.Volume == nil {
			merged.Volume = quote.Volume
		}
		if merged.MarketCap == nil {
			merged.MarketCap = quote.MarketCap
		}
		if merged.PETrailing == nil {
			merged.PETrailing = quote.PETrailing
		}
	}

	// merged stays nil when no provider had a price; the caller skips
	return merged, nil
}

// IndexQuote returns the first usable index level for symbol, or nil
// without error when no provider has one
func (a *Aggregator) IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error) {
	for _, provider := range a.providers {
		quote, err := provider.IndexQuote(ctx, symbol)
		if err != nil {
			logger.Warn("index provider failed",
				zap.String("provider", provider.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			continue
		}
		if quote != nil && quote.Level != nil {
			return quote, nil
		}
	}

	return nil, nil
}
