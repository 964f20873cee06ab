package analysis

import (
	"testing"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

func s(v string) *string { return &v }

func TestMerge(t *testing.T) {
	t.Run("valuation prefers primary source", func(t *testing.T) {
		yahoo := &models.Fundamentals{PETrailing: f(28.5), PEGRatio: f(1.2)}
		guru := &models.Fundamentals{PEGRatio: f(9.9)}

		merged := Merge(yahoo, guru, nil)

		if merged.PETrailing == nil || *merged.PETrailing != 28.5 {
			t.Errorf("Expected PE 28.5, got %v", merged.PETrailing)
		}
		if merged.PEGRatio == nil || *merged.PEGRatio != 1.2 {
			t.Errorf("Expected primary PEG 1.2, got %v", merged.PEGRatio)
		}
	})

	t.Run("peg falls back to score source", func(t *testing.T) {
		yahoo := &models.Fundamentals{}
		guru := &models.Fundamentals{PEGRatio: f(1.8)}

		merged := Merge(yahoo, guru, nil)

		if merged.PEGRatio == nil || *merged.PEGRatio != 1.8 {
			t.Errorf("Expected fallback PEG 1.8, got %v", merged.PEGRatio)
		}
	})

	t.Run("composite scores come only from score source", func(t *testing.T) {
		yahoo := &models.Fundamentals{}
		guru := &models.Fundamentals{
			GFScore:        s("85/100"),
			AltmanZScore:   f(4.2),
			PiotroskiScore: s("7/9"),
		}

		merged := Merge(yahoo, guru, nil)

		if merged.GFScore == nil || *merged.GFScore != "85/100" {
			t.Errorf("Expected GF score 85/100, got %v", merged.GFScore)
		}
		if merged.AltmanZScore == nil || *merged.AltmanZScore != 4.2 {
			t.Errorf("Expected Altman 4.2, got %v", merged.AltmanZScore)
		}
		if merged.PiotroskiScore == nil || *merged.PiotroskiScore != "7/9" {
			t.Errorf("Expected Piotroski 7/9, got %v", merged.PiotroskiScore)
		}
	})

	t.Run("interest coverage comes only from ratio source", func(t *testing.T) {
		sa := &models.Fundamentals{InterestCoverage: f(15.3)}

		merged := Merge(nil, nil, sa)

		if merged.InterestCoverage == nil || *merged.InterestCoverage != 15.3 {
			t.Errorf("Expected interest coverage 15.3, got %v", merged.InterestCoverage)
		}
	})

	t.Run("absent everywhere stays nil", func(t *testing.T) {
		merged := Merge(nil, nil, nil)

		if merged.PEGRatio != nil || merged.GFScore != nil || merged.InterestCoverage != nil {
			t.Error("Expected nil fields from empty sources")
		}
	})
}
