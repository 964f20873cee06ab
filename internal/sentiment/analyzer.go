package sentiment

import (
	"strings"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Analyzer performs simple keyword-based sentiment analysis on
// news headlines and summaries
type Analyzer struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
}

// NewAnalyzer creates new sentiment analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positiveWords: buildPositiveWords(),
		negativeWords: buildNegativeWords(),
	}
}

// AnalyzeSentiment analyzes text and returns sentiment score (-1.0 to 1.0)
func (a *Analyzer) AnalyzeSentiment(text string) float64 {
	if text == "" {
		return 0.0
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0.0
	}

	var score float64
	matchCount := 0

	for _, word := range words {
		// Clean punctuation
		word = strings.Trim(word, ".,!?;:'\"()")

		if weight, ok := a.positiveWords[word]; ok {
			score += weight
			matchCount++
		}

		if weight, ok := a.negativeWords[word]; ok {
			score -= weight
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0
	}

	// Normalize score
	normalizedScore := score / float64(len(words))

	// Clamp to -1.0 to 1.0
	if normalizedScore > 1.0 {
		normalizedScore = 1.0
	} else if normalizedScore < -1.0 {
		normalizedScore = -1.0
	}

	return normalizedScore
}

// Classify maps text to a discrete article label. Scores within the
// neutral band around zero stay neutral.
func (a *Analyzer) Classify(text string) models.NewsSentiment {
	score := a.AnalyzeSentiment(text)

	switch {
	case score > 0.02:
		return models.NewsPositive
	case score < -0.02:
		return models.NewsNegative
	default:
		return models.NewsNeutral
	}
}

// buildPositiveWords returns positive keywords for equities
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"bullish":    1.0,
		"rally":      0.9,
		"surge":      0.8,
		"soar":       0.8,
		"soars":      0.8,
		"jump":       0.7,
		"jumps":      0.7,
		"gain":       0.6,
		"gains":      0.6,
		"profit":     0.6,
		"record":     0.6,
		"rise":       0.5,
		"rises":      0.5,
		"grow":       0.5,
		"growth":     0.5,
		"strong":     0.5,
		"positive":   0.5,
		"optimistic": 0.5,

		// Equities specific
		"beat":        0.8,
		"beats":       0.8,
		"upgrade":     0.8,
		"upgraded":    0.8,
		"upgrades":    0.8,
		"outperform":  0.7,
		"overweight":  0.6,
		"buyback":     0.6,
		"dividend":    0.5,
		"raises":      0.6,
		"raised":      0.6,
		"approval":    0.6,
		"partnership": 0.5,
		"expansion":   0.5,
		"buy":         0.5,
	}
}

// buildNegativeWords returns negative keywords for equities
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"bearish":     1.0,
		"crash":       1.0,
		"plunge":      0.8,
		"plunges":     0.8,
		"tumble":      0.8,
		"tumbles":     0.8,
		"sink":        0.7,
		"sinks":       0.7,
		"fall":        0.6,
		"falls":       0.6,
		"drop":        0.6,
		"drops":       0.6,
		"decline":     0.6,
		"loss":        0.7,
		"losses":      0.7,
		"weak":        0.5,
		"negative":    0.5,
		"pessimistic": 0.5,
		"fear":        0.6,
		"selloff":     0.7,
		"correction":  0.6,

		// Equities specific
		"miss":        0.8,
		"misses":      0.8,
		"missed":      0.8,
		"downgrade":   0.8,
		"downgraded":  0.8,
		"downgrades":  0.8,
		"underweight": 0.6,
		"cuts":        0.6,
		"cut":         0.5,
		"layoffs":     0.8,
		"lawsuit":     0.7,
		"probe":       0.7,
		"recall":      0.7,
		"fraud":       1.0,
		"bankruptcy":  1.0,
		"warning":     0.6,
		"overvalued":  0.6,
		"sell":        0.5,
	}
}
