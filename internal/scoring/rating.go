package scoring

import (
	"strings"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

const maxScore = 20

// Metrics is the scored view of one merged fundamentals record. Margins,
// ROE and dividend yield are percentage points; the valuation and
// balance sheet fields are plain ratios. Nil means unknown and scores
// zero, never as a bad value.
type Metrics struct {
	PEGRatio             *float64
	PEForward            *float64
	PETrailing           *float64
	DebtToEquity         *float64
	ROE                  *float64
	CurrentRatio         *float64
	NetMargin            *float64
	GrossMargin          *float64
	DividendYield        *float64
	AnalystRating        *string
	Price                *float64
	FiftyDayAverage      *float64
	TwoHundredDayAverage *float64
}

// Score computes the additive point score and how many factors actually
// fired. Branch order within each factor is significant: first match
// wins, so boundary values fall through exactly as listed.
func Score(m *Metrics) (score, factors int) {
	// 1. PEG ratio, max 3 points
	if peg := m.PEGRatio; peg != nil && *peg > 0 {
		factors++
		switch {
		case *peg < 0.5:
			score += 3
		case *peg < 1:
			score += 2
		case *peg < 1.5:
			score += 1
		case *peg > 3:
			score -= 1
		}
	}

	// 2. P/E, forward preferred, max 3 points
	pe := m.PEForward
	if pe == nil {
		pe = m.PETrailing
	}
	if pe != nil && *pe > 0 {
		factors++
		switch {
		case *pe < 12:
			score += 3
		case *pe < 18:
			score += 2
		case *pe < 25:
			score += 1
		case *pe > 40:
			score -= 1
		case *pe > 60:
			score -= 2
		}
	}

	// 3. Debt to equity, max 3 points
	if de := m.DebtToEquity; de != nil {
		factors++
		switch {
		case *de < 0.3:
			score += 3
		case *de < 0.5:
			score += 2
		case *de < 1.0:
			score += 1
		case *de > 2.0:
			score -= 1
		case *de > 3.0:
			score -= 2
		}
	}

	// 4. Return on equity, max 3 points
	if roe := m.ROE; roe != nil {
		factors++
		switch {
		case *roe > 25:
			score += 3
		case *roe > 15:
			score += 2
		case *roe > 10:
			score += 1
		case *roe < 5:
			score -= 1
		}
	}

	// 5. Current ratio, max 2 points
	if cr := m.CurrentRatio; cr != nil {
		factors++
		switch {
		case *cr > 2.0:
			score += 2
		case *cr > 1.5:
			score += 1
		case *cr < 1.0:
			score -= 1
		}
	}

	// 6. Margins, max 3 points combined
	if nm := m.NetMargin; nm != nil {
		factors++
		switch {
		case *nm > 20:
			score += 2
		case *nm > 10:
			score += 1
		case *nm < 0:
			score -= 2
		}
	}
	if gm := m.GrossMargin; gm != nil {
		factors++
		switch {
		case *gm > 50:
			score += 1
		case *gm < 20:
			score -= 1
		}
	}

	// 7. Analyst recommendation, max 1 point
	if rec := m.AnalystRating; rec != nil && *rec != "" {
		factors++
		lower := strings.ToLower(*rec)
		if strings.Contains(lower, "buy") || strings.Contains(lower, "strong") {
			score++
		} else if strings.Contains(lower, "sell") {
			score--
		}
	}

	return score, factors
}

// Rate maps metrics to a discrete rating. A record where no factor
// fired stays HOLD rather than falling through the band chain.
// HIGH_RISK is never produced here.
func Rate(m *Metrics) models.Rating {
	score, factors := Score(m)
	if factors == 0 {
		return models.RatingHold
	}

	percent := float64(score) / maxScore * 100

	switch {
	case percent >= 70:
		return models.RatingStrongBuy
	case percent >= 50:
		return models.RatingBuy
	case percent >= 30:
		return models.RatingHold
	case percent >= 10:
		return models.RatingSell
	default:
		return models.RatingStrongSell
	}
}
