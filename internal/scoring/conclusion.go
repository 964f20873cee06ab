package scoring

import (
	"fmt"
	"strings"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// conclusionClauses holds the language-specific text for the shared
// gating logic in buildConclusion
type conclusionClauses struct {
	highValuation  string
	cheapValuation string
	minimalDebt    string
	healthyDebt    string
	highLeverage   string
	strongROE      string
	dividendIncome string
	normalRanges   string
	label          func(models.Rating) string
}

var englishClauses = conclusionClauses{
	highValuation:  "High valuation at %.1fx P/E.",
	cheapValuation: "Attractive valuation at %.1fx P/E.",
	minimalDebt:    "Excellent balance sheet with minimal debt.",
	healthyDebt:    "Healthy debt levels.",
	highLeverage:   "High leverage - monitor debt levels.",
	strongROE:      "Strong profitability with %.1f%% ROE.",
	dividendIncome: "%.2f%% dividend yield provides income.",
	normalRanges:   "Metrics within normal ranges.",
	label:          models.Rating.Label,
}

var spanishClauses = conclusionClauses{
	highValuation:  "Valoración alta a %.1fx P/E.",
	cheapValuation: "Valoración atractiva a %.1fx P/E.",
	minimalDebt:    "Excelente balance con deuda mínima.",
	healthyDebt:    "Niveles de deuda saludables.",
	highLeverage:   "Alto apalancamiento - monitorear deuda.",
	strongROE:      "Fuerte rentabilidad con %.1f%% ROE.",
	dividendIncome: "%.2f%% de dividendo proporciona ingresos.",
	normalRanges:   "Métricas dentro de rangos normales.",
	label:          models.Rating.LabelES,
}

// ConclusionEN renders the English analysis summary
func ConclusionEN(m *Metrics, rating models.Rating) string {
	return buildConclusion(m, rating, &englishClauses)
}

// ConclusionES renders the Spanish analysis summary
func ConclusionES(m *Metrics, rating models.Rating) string {
	return buildConclusion(m, rating, &spanishClauses)
}

// buildConclusion assembles the clause list. Both languages share this
// gating so the variants can never disagree on which clauses fire.
func buildConclusion(m *Metrics, rating models.Rating, c *conclusionClauses) string {
	var parts []string

	if pe := m.PETrailing; pe != nil && *pe != 0 {
		if *pe > 50 {
			parts = append(parts, fmt.Sprintf(c.highValuation, *pe))
		} else if *pe < 15 {
			parts = append(parts, fmt.Sprintf(c.cheapValuation, *pe))
		}
	}

	if de := m.DebtToEquity; de != nil {
		if *de < 0.3 {
			parts = append(parts, c.minimalDebt)
		} else if *de < 1 {
			parts = append(parts, c.healthyDebt)
		} else if *de > 2 {
			parts = append(parts, c.highLeverage)
		}
	}

	if roe := m.ROE; roe != nil && *roe > 20 {
		parts = append(parts, fmt.Sprintf(c.strongROE, *roe))
	}

	if div := m.DividendYield; div != nil && *div > 2 {
		parts = append(parts, fmt.Sprintf(c.dividendIncome, *div))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s: %s", c.label(rating), c.normalRanges)
	}

	return fmt.Sprintf("%s: %s", c.label(rating), strings.Join(parts, " "))
}
