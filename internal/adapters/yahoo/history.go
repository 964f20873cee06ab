package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// History fetches daily candles for symbol over a named range such as
// "1mo", "6mo" or "1y". Days with no close are skipped.
func (c *Client) History(ctx context.Context, symbol, period string) ([]models.Candle, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(chartURL, symbol, period))
	if err != nil {
		return nil, err
	}

	var result struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []*float64 `json:"open"`
						High   []*float64 `json:"high"`
						Low    []*float64 `json:"low"`
						Close  []*float64 `json:"close"`
						Volume []*int64   `json:"volume"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.Chart.Error.Description)
	}

	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no history for symbol %s", symbol)
	}

	series := result.Chart.Result[0]
	quote := series.Indicators.Quote[0]

	candles := make([]models.Candle, 0, len(series.Timestamp))
	for i, ts := range series.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		candle := models.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
