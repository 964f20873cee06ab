package scoring

import (
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Momentum scores price position against the 50-day and 200-day moving
// averages, one point each, range -2..+2. Missing inputs contribute
// nothing.
func Momentum(m *Metrics) int {
	momentum := 0

	if m.Price != nil && m.FiftyDayAverage != nil {
		if *m.Price > *m.FiftyDayAverage*1.05 {
			momentum++
		} else if *m.Price < *m.FiftyDayAverage*0.95 {
			momentum--
		}
	}

	if m.Price != nil && m.TwoHundredDayAverage != nil {
		if *m.Price > *m.TwoHundredDayAverage*1.1 {
			momentum++
		} else if *m.Price < *m.TwoHundredDayAverage*0.9 {
			momentum--
		}
	}

	return momentum
}

// Sentiment combines the rating with momentum. Strong fundamentals with
// weak momentum, or the reverse, land on NEUTRAL.
func Sentiment(m *Metrics, rating models.Rating) models.Sentiment {
	momentum := Momentum(m)

	switch rating {
	case models.RatingStrongBuy, models.RatingBuy:
		if momentum <= -1 {
			return models.SentimentNeutral
		}
		return models.SentimentBullish

	case models.RatingSell, models.RatingStrongSell:
		if momentum >= 1 {
			return models.SentimentNeutral
		}
		return models.SentimentBearish

	default:
		if momentum >= 2 {
			return models.SentimentBullish
		}
		if momentum <= -2 {
			return models.SentimentBearish
		}
		return models.SentimentNeutral
	}
}
