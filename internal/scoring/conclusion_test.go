package scoring

import (
	"strings"
	"testing"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

func TestConclusions(t *testing.T) {
	t.Run("clauses fire independently", func(t *testing.T) {
		m := &Metrics{
			PETrailing:    f(12.3),
			DebtToEquity:  f(0.2),
			ROE:           f(28.7),
			DividendYield: f(3.25),
		}

		en := ConclusionEN(m, models.RatingStrongBuy)

		if !strings.HasPrefix(en, "STRONG BUY: ") {
			t.Errorf("Expected STRONG BUY prefix, got %q", en)
		}
		for _, want := range []string{
			"Attractive valuation at 12.3x P/E.",
			"Excellent balance sheet with minimal debt.",
			"Strong profitability with 28.7% ROE.",
			"3.25% dividend yield provides income.",
		} {
			if !strings.Contains(en, want) {
				t.Errorf("Missing clause %q in %q", want, en)
			}
		}
	})

	t.Run("languages share gating", func(t *testing.T) {
		m := &Metrics{PETrailing: f(62.0), DebtToEquity: f(2.5)}

		en := ConclusionEN(m, models.RatingSell)
		es := ConclusionES(m, models.RatingSell)

		if !strings.Contains(en, "High valuation at 62.0x P/E.") {
			t.Errorf("Missing valuation clause in %q", en)
		}
		if !strings.Contains(es, "Valoración alta a 62.0x P/E.") {
			t.Errorf("Missing Spanish valuation clause in %q", es)
		}
		if !strings.Contains(en, "High leverage") || !strings.Contains(es, "Alto apalancamiento") {
			t.Error("Leverage clause must fire in both languages")
		}
		if !strings.HasPrefix(es, "VENTA: ") {
			t.Errorf("Expected VENTA prefix, got %q", es)
		}

		if strings.Count(en, ".") != strings.Count(es, ".") {
			t.Errorf("Clause counts differ between languages: %q vs %q", en, es)
		}
	})

	t.Run("fallback when nothing fires", func(t *testing.T) {
		en := ConclusionEN(&Metrics{PETrailing: f(20)}, models.RatingHold)
		if en != "HOLD: Metrics within normal ranges." {
			t.Errorf("Unexpected fallback: %q", en)
		}

		es := ConclusionES(&Metrics{}, models.RatingHold)
		if es != "MANTENER: Métricas dentro de rangos normales." {
			t.Errorf("Unexpected Spanish fallback: %q", es)
		}
	})
}
