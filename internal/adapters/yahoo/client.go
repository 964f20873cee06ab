package yahoo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/httpclient"
)

const (
	sourceName = "Yahoo Finance"

	quoteSummaryURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,summaryDetail,financialData,defaultKeyStatistics,assetProfile"
	searchURL       = "https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0"
	chartURL        = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s"
)

// Client fetches quotes, fundamentals, news and history from the Yahoo
// Finance JSON endpoints. It is the primary source for every domain.
type Client struct {
	http *httpclient.Client
}

// NewClient creates new Yahoo Finance client
func NewClient() *Client {
	return &Client{
		http: httpclient.New(sourceName),
	}
}

// Name returns the source tag recorded on persisted rows
func (c *Client) Name() string {
	return sourceName
}

// value is Yahoo's number envelope. Raw stays nil when Yahoo returns an
// empty object for a missing field.
type value struct {
	Raw *float64 `json:"raw"`
}

// intValue mirrors value for integer fields
type intValue struct {
	Raw *int64 `json:"raw"`
}

type quoteSummaryModules struct {
	Price struct {
		RegularMarketPrice         value   `json:"regularMarketPrice"`
		RegularMarketChange        value   `json:"regularMarketChange"`
		RegularMarketChangePercent value   `json:"regularMarketChangePercent"`
		RegularMarketPreviousClose value   `json:"regularMarketPreviousClose"`
		RegularMarketVolume        intValue `json:"regularMarketVolume"`
		MarketCap                  value   `json:"marketCap"`
		ShortName                  string  `json:"shortName"`
		LongName                   string  `json:"longName"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE           value `json:"trailingPE"`
		ForwardPE            value `json:"forwardPE"`
		DividendYield        value `json:"dividendYield"`
		Beta                 value `json:"beta"`
		FiftyDayAverage      value `json:"fiftyDayAverage"`
		TwoHundredDayAverage value `json:"twoHundredDayAverage"`
	} `json:"summaryDetail"`
	FinancialData struct {
		CurrentPrice      value   `json:"currentPrice"`
		TargetMeanPrice   value   `json:"targetMeanPrice"`
		RecommendationKey string  `json:"recommendationKey"`
		DebtToEquity      value   `json:"debtToEquity"`
		CurrentRatio      value   `json:"currentRatio"`
		QuickRatio        value   `json:"quickRatio"`
		TotalCash         value   `json:"totalCash"`
		TotalDebt         value   `json:"totalDebt"`
		FreeCashflow      value   `json:"freeCashflow"`
		GrossMargins      value   `json:"grossMargins"`
		OperatingMargins  value   `json:"operatingMargins"`
		ProfitMargins     value   `json:"profitMargins"`
		ReturnOnEquity    value   `json:"returnOnEquity"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		PegRatio value `json:"pegRatio"`
	} `json:"defaultKeyStatistics"`
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
}

// fetchQuoteSummary retrieves and unwraps the quoteSummary envelope
func (c *Client) fetchQuoteSummary(ctx context.Context, symbol string) (*quoteSummaryModules, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(quoteSummaryURL, symbol))
	if err != nil {
		return nil, err
	}

	var envelope struct {
		QuoteSummary struct {
			Result []quoteSummaryModules `json:"result"`
			Error  *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"quoteSummary"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", envelope.QuoteSummary.Error.Description)
	}

	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no data for symbol %s", symbol)
	}

	return &envelope.QuoteSummary.Result[0], nil
}
