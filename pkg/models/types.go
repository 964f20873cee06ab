package models

// Rating is the overall buy/sell recommendation derived from fundamentals
type Rating string

const (
	RatingStrongBuy  Rating = "STRONG_BUY"
	RatingBuy        Rating = "BUY"
	RatingHold       Rating = "HOLD"
	RatingSell       Rating = "SELL"
	RatingStrongSell Rating = "STRONG_SELL"
	// RatingHighRisk is never produced by the scoring rubric, it exists
	// for manual overrides only
	RatingHighRisk Rating = "HIGH_RISK"
)

// Label returns the human readable English rating label
func (r Rating) Label() string {
	switch r {
	case RatingStrongBuy:
		return "STRONG BUY"
	case RatingBuy:
		return "BUY"
	case RatingSell:
		return "SELL"
	case RatingStrongSell:
		return "STRONG SELL"
	case RatingHighRisk:
		return "HIGH RISK"
	default:
		return "HOLD"
	}
}

// LabelES returns the Spanish rating label
func (r Rating) LabelES() string {
	switch r {
	case RatingStrongBuy:
		return "COMPRA FUERTE"
	case RatingBuy:
		return "COMPRA"
	case RatingSell:
		return "VENTA"
	case RatingStrongSell:
		return "VENTA FUERTE"
	case RatingHighRisk:
		return "ALTO RIESGO"
	default:
		return "MANTENER"
	}
}

// Sentiment is the coarse bullish/neutral/bearish label for an analysis
type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentNeutral Sentiment = "NEUTRAL"
	SentimentBearish Sentiment = "BEARISH"
)

// NewsSentiment labels a single news article
type NewsSentiment string

const (
	NewsPositive NewsSentiment = "positive"
	NewsNeutral  NewsSentiment = "neutral"
	NewsNegative NewsSentiment = "negative"
)

// RunStatus is the outcome of one coordinator run
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunPartial RunStatus = "partial"
	RunFailed  RunStatus = "failed"
)

// TaskType tags a coordinator run with its update domain
type TaskType string

const (
	TaskPrice    TaskType = "price"
	TaskNews     TaskType = "news"
	TaskAnalysis TaskType = "analysis"
)
