package sentiment

import (
	"testing"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

func TestAnalyzer_Classify(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		text     string
		expected models.NewsSentiment
	}{
		{
			name:     "earnings beat",
			text:     "Apple beats earnings expectations, shares surge in after hours trading",
			expected: models.NewsPositive,
		},
		{
			name:     "analyst upgrade",
			text:     "Morgan Stanley upgrades Nvidia to overweight, raises price target",
			expected: models.NewsPositive,
		},
		{
			name:     "earnings miss",
			text:     "Intel misses revenue estimates, stock drops on weak guidance",
			expected: models.NewsNegative,
		},
		{
			name:     "lawsuit news",
			text:     "Boeing faces new lawsuit over production defects, shares fall",
			expected: models.NewsNegative,
		},
		{
			name:     "neutral announcement",
			text:     "Microsoft schedules annual shareholder meeting for December",
			expected: models.NewsNeutral,
		},
		{
			name:     "empty text",
			text:     "",
			expected: models.NewsNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Classify(tt.text)
			if got != tt.expected {
				t.Errorf("Expected %s sentiment, got %s (score: %.3f)",
					tt.expected, got, analyzer.AnalyzeSentiment(tt.text))
			}
		})
	}
}

func TestAnalyzer_AnalyzeSentiment_Bounds(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name string
		text string
	}{
		{name: "dense positive", text: "rally surge soar gain beat upgrade"},
		{name: "dense negative", text: "crash plunge tumble miss downgrade fraud"},
		{name: "mixed", text: "shares rally despite lawsuit and layoffs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := analyzer.AnalyzeSentiment(tt.text)
			if score < -1.0 || score > 1.0 {
				t.Errorf("Score %.3f outside [-1, 1]", score)
			}
		})
	}
}
