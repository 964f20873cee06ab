package analysis

import (
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Merge combines the three provider records into one fundamentals
// record using field-level precedence: each assignment below names its
// ordered source list and the first non-nil value wins. Valuation and
// balance sheet figures come from Yahoo; the composite quality scores
// come only from GuruFocus; interest coverage only from StockAnalysis;
// PEG falls back from Yahoo to GuruFocus. Nil inputs are treated as
// empty records.
func Merge(yahoo, guru, sa *models.Fundamentals) *models.Fundamentals {
	if yahoo == nil {
		yahoo = &models.Fundamentals{}
	}
	if guru == nil {
		guru = &models.Fundamentals{}
	}
	if sa == nil {
		sa = &models.Fundamentals{}
	}

	return &models.Fundamentals{
		Price:                firstFloat(func(f *models.Fundamentals) *float64 { return f.Price }, yahoo),
		MarketCap:            firstFloat(func(f *models.Fundamentals) *float64 { return f.MarketCap }, yahoo),
		PETrailing:           firstFloat(func(f *models.Fundamentals) *float64 { return f.PETrailing }, yahoo),
		PEForward:            firstFloat(func(f *models.Fundamentals) *float64 { return f.PEForward }, yahoo),
		PEGRatio:             firstFloat(func(f *models.Fundamentals) *float64 { return f.PEGRatio }, yahoo, guru),
		DebtToEquity:         firstFloat(func(f *models.Fundamentals) *float64 { return f.DebtToEquity }, yahoo),
		CurrentRatio:         firstFloat(func(f *models.Fundamentals) *float64 { return f.CurrentRatio }, yahoo),
		QuickRatio:           firstFloat(func(f *models.Fundamentals) *float64 { return f.QuickRatio }, yahoo),
		InterestCoverage:     firstFloat(func(f *models.Fundamentals) *float64 { return f.InterestCoverage }, sa),
		TotalCash:            firstFloat(func(f *models.Fundamentals) *float64 { return f.TotalCash }, yahoo),
		TotalDebt:            firstFloat(func(f *models.Fundamentals) *float64 { return f.TotalDebt }, yahoo),
		FreeCashFlow:         firstFloat(func(f *models.Fundamentals) *float64 { return f.FreeCashFlow }, yahoo),
		GrossMargin:          firstFloat(func(f *models.Fundamentals) *float64 { return f.GrossMargin }, yahoo),
		OperatingMargin:      firstFloat(func(f *models.Fundamentals) *float64 { return f.OperatingMargin }, yahoo),
		ProfitMargin:         firstFloat(func(f *models.Fundamentals) *float64 { return f.ProfitMargin }, yahoo),
		ROE:                  firstFloat(func(f *models.Fundamentals) *float64 { return f.ROE }, yahoo),
		DividendYield:        firstFloat(func(f *models.Fundamentals) *float64 { return f.DividendYield }, yahoo),
		Beta:                 firstFloat(func(f *models.Fundamentals) *float64 { return f.Beta }, yahoo),
		TargetMeanPrice:      firstFloat(func(f *models.Fundamentals) *float64 { return f.TargetMeanPrice }, yahoo),
		FiftyDayAverage:      firstFloat(func(f *models.Fundamentals) *float64 { return f.FiftyDayAverage }, yahoo),
		TwoHundredDayAverage: firstFloat(func(f *models.Fundamentals) *float64 { return f.TwoHundredDayAverage }, yahoo),
		AltmanZScore:         firstFloat(func(f *models.Fundamentals) *float64 { return f.AltmanZScore }, guru),
		RecommendationKey:    firstString(func(f *models.Fundamentals) *string { return f.RecommendationKey }, yahoo),
		GFScore:              firstString(func(f *models.Fundamentals) *string { return f.GFScore }, guru),
		PiotroskiScore:       firstString(func(f *models.Fundamentals) *string { return f.PiotroskiScore }, guru),
		Name:                 firstString(func(f *models.Fundamentals) *string { return f.Name }, yahoo),
		Sector:               firstString(func(f *models.Fundamentals) *string { return f.Sector }, yahoo),
		Industry:             firstString(func(f *models.Fundamentals) *string { return f.Industry }, yahoo),
	}
}

func firstFloat(get func(*models.Fundamentals) *float64, records ...*models.Fundamentals) *float64 {
	for _, r := range records {
		if v := get(r); v != nil {
			return v
		}
	}
	return nil
}

func firstString(get func(*models.Fundamentals) *string, records ...*models.Fundamentals) *string {
	for _, r := range records {
		if v := get(r); v != nil {
			return v
		}
	}
	return nil
}
