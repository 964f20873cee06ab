package scoring

import (
	"testing"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestRate(t *testing.T) {
	t.Run("no metrics yields HOLD", func(t *testing.T) {
		if got := Rate(&Metrics{}); got != models.RatingHold {
			t.Errorf("Rate(empty) = %s, want HOLD", got)
		}
	})

	t.Run("exactly 70 percent is STRONG_BUY", func(t *testing.T) {
		// PEG +3, P/E +3, D/E +3, ROE +3, current ratio +2 = 14/20 = 70%
		m := &Metrics{
			PEGRatio:     f(0.4),
			PEForward:    f(10),
			DebtToEquity: f(0.2),
			ROE:          f(30),
			CurrentRatio: f(2.5),
		}

		if score, _ := Score(m); score != 14 {
			t.Fatalf("Score = %d, want 14", score)
		}
		if got := Rate(m); got != models.RatingStrongBuy {
			t.Errorf("Rate = %s, want STRONG_BUY", got)
		}
	})

	t.Run("just under 70 percent is BUY", func(t *testing.T) {
		// Same as above minus one point: 13/20 = 65%
		m := &Metrics{
			PEGRatio:     f(0.4),
			PEForward:    f(10),
			DebtToEquity: f(0.2),
			ROE:          f(30),
			CurrentRatio: f(1.8),
		}

		if score, _ := Score(m); score != 13 {
			t.Fatalf("Score = %d, want 13", score)
		}
		if got := Rate(m); got != models.RatingBuy {
			t.Errorf("Rate = %s, want BUY", got)
		}
	})

	t.Run("negative score is STRONG_SELL", func(t *testing.T) {
		m := &Metrics{
			PEGRatio:      f(4.0),
			PEForward:     f(55),
			DebtToEquity:  f(2.5),
			ROE:           f(2),
			CurrentRatio:  f(0.8),
			NetMargin:     f(-5),
			GrossMargin:   f(15),
			AnalystRating: s("sell"),
		}

		if got := Rate(m); got != models.RatingStrongSell {
			t.Errorf("Rate = %s, want STRONG_SELL", got)
		}
	})

	t.Run("boundary values fall to next lower bucket", func(t *testing.T) {
		// PEG exactly 0.5 scores +2, not +3
		m := &Metrics{PEGRatio: f(0.5)}
		if score, _ := Score(m); score != 2 {
			t.Errorf("Score(PEG=0.5) = %d, want 2", score)
		}

		// P/E exactly 12 scores +2, not +3
		m = &Metrics{PEForward: f(12)}
		if score, _ := Score(m); score != 2 {
			t.Errorf("Score(PE=12) = %d, want 2", score)
		}
	})

	t.Run("forward PE preferred over trailing", func(t *testing.T) {
		m := &Metrics{PEForward: f(10), PETrailing: f(100)}
		if score, _ := Score(m); score != 3 {
			t.Errorf("Score = %d, want 3 from forward PE", score)
		}
	})

	t.Run("negative PEG ignored", func(t *testing.T) {
		m := &Metrics{PEGRatio: f(-1.2)}
		score, factors := Score(m)
		if score != 0 || factors != 0 {
			t.Errorf("Score(PEG<0) = %d (factors %d), want 0 and 0", score, factors)
		}
	})

	t.Run("analyst recommendation shifts score", func(t *testing.T) {
		buy := &Metrics{AnalystRating: s("strong_buy")}
		if score, _ := Score(buy); score != 1 {
			t.Errorf("Score(strong_buy) = %d, want 1", score)
		}

		sell := &Metrics{AnalystRating: s("sell")}
		if score, _ := Score(sell); score != -1 {
			t.Errorf("Score(sell) = %d, want -1", score)
		}
	})
}

func TestSentiment(t *testing.T) {
	t.Run("no metrics yields NEUTRAL", func(t *testing.T) {
		m := &Metrics{}
		if got := Sentiment(m, Rate(m)); got != models.SentimentNeutral {
			t.Errorf("Sentiment(empty) = %s, want NEUTRAL", got)
		}
	})

	t.Run("buy rating with negative momentum is NEUTRAL", func(t *testing.T) {
		// Price below 0.95x the 50-day average: momentum -1
		m := &Metrics{Price: f(90), FiftyDayAverage: f(100)}
		if got := Momentum(m); got != -1 {
			t.Fatalf("Momentum = %d, want -1", got)
		}
		if got := Sentiment(m, models.RatingBuy); got != models.SentimentNeutral {
			t.Errorf("Sentiment = %s, want NEUTRAL", got)
		}
	})

	t.Run("buy rating with flat momentum is BULLISH", func(t *testing.T) {
		m := &Metrics{Price: f(100), FiftyDayAverage: f(100)}
		if got := Momentum(m); got != 0 {
			t.Fatalf("Momentum = %d, want 0", got)
		}
		if got := Sentiment(m, models.RatingBuy); got != models.SentimentBullish {
			t.Errorf("Sentiment = %s, want BULLISH", got)
		}
	})

	t.Run("sell rating with positive momentum is NEUTRAL", func(t *testing.T) {
		m := &Metrics{Price: f(120), FiftyDayAverage: f(100)}
		if got := Sentiment(m, models.RatingSell); got != models.SentimentNeutral {
			t.Errorf("Sentiment = %s, want NEUTRAL", got)
		}
	})

	t.Run("sell rating with flat momentum is BEARISH", func(t *testing.T) {
		m := &Metrics{}
		if got := Sentiment(m, models.RatingStrongSell); got != models.SentimentBearish {
			t.Errorf("Sentiment = %s, want BEARISH", got)
		}
	})

	t.Run("hold needs strong momentum to move", func(t *testing.T) {
		// Above both averages: momentum +2
		up := &Metrics{Price: f(150), FiftyDayAverage: f(100), TwoHundredDayAverage: f(100)}
		if got := Sentiment(up, models.RatingHold); got != models.SentimentBullish {
			t.Errorf("Sentiment = %s, want BULLISH", got)
		}

		down := &Metrics{Price: f(60), FiftyDayAverage: f(100), TwoHundredDayAverage: f(100)}
		if got := Sentiment(down, models.RatingHold); got != models.SentimentBearish {
			t.Errorf("Sentiment = %s, want BEARISH", got)
		}

		flat := &Metrics{Price: f(100), FiftyDayAverage: f(100), TwoHundredDayAverage: f(100)}
		if got := Sentiment(flat, models.RatingHold); got != models.SentimentNeutral {
			t.Errorf("Sentiment = %s, want NEUTRAL", got)
		}
	})
}
