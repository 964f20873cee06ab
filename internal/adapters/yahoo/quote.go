package yahoo

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Quote fetches the current stock quote for symbol. A response that
// carries no price field is not an error: the quote is nil and the
// caller skips the symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	modules, err := c.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	price := modules.FinancialData.CurrentPrice.Raw
	if price == nil {
		price = modules.Price.RegularMarketPrice.Raw
	}
	if price == nil {
		logger.Debug("no price in quote response", zap.String("symbol", symbol))
		return nil, nil
	}

	quote := &models.Quote{
		Price:         price,
		Change:        modules.Price.RegularMarketChange.Raw,
		ChangePercent: asPercent(modules.Price.RegularMarketChangePercent.Raw),
		Volume:        modules.Price.RegularMarketVolume.Raw,
		MarketCap:     modules.Price.MarketCap.Raw,
		PETrailing:    modules.SummaryDetail.TrailingPE.Raw,
		Source:        sourceName,
	}

	logger.Debug("fetched quote",
		zap.String("symbol", symbol),
		zap.Float64("price", *price),
	)

	return quote, nil
}

// IndexQuote fetches the current level for a market index. Nil without
// error when the response has no level.
func (c *Client) IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error) {
	modules, err := c.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	level := modules.Price.RegularMarketPrice.Raw
	if level == nil {
		level = modules.Price.RegularMarketPreviousClose.Raw
	}
	if level == nil {
		logger.Debug("no level in quote response", zap.String("symbol", symbol))
		return nil, nil
	}

	return &models.IndexQuote{
		Level:         level,
		Change:        modules.Price.RegularMarketChange.Raw,
		ChangePercent: asPercent(modules.Price.RegularMarketChangePercent.Raw),
		Source:        sourceName,
	}, nil
}

// Fundamentals fetches the full fundamentals record for symbol. Missing
// fields stay nil.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	modules, err := c.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	price := modules.FinancialData.CurrentPrice.Raw
	if price == nil {
		price = modules.Price.RegularMarketPrice.Raw
	}

	f := &models.Fundamentals{
		Price:                price,
		MarketCap:            modules.Price.MarketCap.Raw,
		PETrailing:           modules.SummaryDetail.TrailingPE.Raw,
		PEForward:            modules.SummaryDetail.ForwardPE.Raw,
		PEGRatio:             modules.DefaultKeyStatistics.PegRatio.Raw,
		DebtToEquity:         modules.FinancialData.DebtToEquity.Raw,
		CurrentRatio:         modules.FinancialData.CurrentRatio.Raw,
		QuickRatio:           modules.FinancialData.QuickRatio.Raw,
		TotalCash:            modules.FinancialData.TotalCash.Raw,
		TotalDebt:            modules.FinancialData.TotalDebt.Raw,
		FreeCashFlow:         modules.FinancialData.FreeCashflow.Raw,
		GrossMargin:          modules.FinancialData.GrossMargins.Raw,
		OperatingMargin:      modules.FinancialData.OperatingMargins.Raw,
		ProfitMargin:         modules.FinancialData.ProfitMargins.Raw,
		ROE:                  modules.FinancialData.ReturnOnEquity.Raw,
		DividendYield:        modules.SummaryDetail.DividendYield.Raw,
		Beta:                 modules.SummaryDetail.Beta.Raw,
		TargetMeanPrice:      modules.FinancialData.TargetMeanPrice.Raw,
		FiftyDayAverage:      modules.SummaryDetail.FiftyDayAverage.Raw,
		TwoHundredDayAverage: modules.SummaryDetail.TwoHundredDayAverage.Raw,
	}

	if key := modules.FinancialData.RecommendationKey; key != "" {
		f.RecommendationKey = &key
	}
	if name := modules.Price.LongName; name != "" {
		f.Name = &name
	} else if name := modules.Price.ShortName; name != "" {
		f.Name = &name
	}
	if sector := modules.AssetProfile.Sector; sector != "" {
		f.Sector = &sector
	}
	if industry := modules.AssetProfile.Industry; industry != "" {
		f.Industry = &industry
	}

	return f, nil
}

// asPercent converts Yahoo's fractional change to a percentage
func asPercent(fraction *float64) *float64 {
	if fraction == nil {
		return nil
	}
	percent := *fraction * 100
	return &percent
}
