package analysis

import (
	"context"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Provider fetches one source's partial fundamentals record for a symbol
type Provider interface {
	// Fundamentals returns the provider's view of symbol. Missing fields
	// stay nil, never zero.
	Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)

	// Name returns provider name
	Name() string
}
