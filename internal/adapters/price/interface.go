package price

import (
	"context"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Provider fetches current quotes from one upstream source
type Provider interface {
	// Quote returns the current stock quote
	Quote(ctx context.Context, symbol string) (*models.Quote, error)

	// IndexQuote returns the current index level
	IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error)

	// Name returns provider name
	Name() string
}
