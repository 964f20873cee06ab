package models

import (
	"encoding/json"
	"time"
)

// StockAnalysis is one persisted fundamentals snapshot with its derived
// rating, sentiment and conclusions. Append-only; the most recent row per
// stock is the current analysis.
type StockAnalysis struct {
	Timestamp        time.Time       `json:"timestamp" db:"ts"`
	Price            *float64        `json:"price" db:"price"`
	MarketCap        *string         `json:"market_cap" db:"market_cap"`
	PETrailing       *float64        `json:"pe_trailing" db:"pe_trailing"`
	PEForward        *float64        `json:"pe_forward" db:"pe_forward"`
	PEGRatio         *float64        `json:"peg_ratio" db:"peg_ratio"`
	DebtEquity       *float64        `json:"debt_equity" db:"debt_equity"`
	CurrentRatio     *float64        `json:"current_ratio" db:"current_ratio"`
	QuickRatio       *float64        `json:"quick_ratio" db:"quick_ratio"`
	InterestCoverage *float64        `json:"interest_coverage" db:"interest_coverage"`
	Cash             *string         `json:"cash" db:"cash"`
	TotalDebt        *string         `json:"total_debt" db:"total_debt"`
	NetCash          *string         `json:"net_cash" db:"net_cash"`
	FreeCashFlow     *string         `json:"free_cash_flow" db:"free_cash_flow"`
	GrossMargin      *float64        `json:"gross_margin" db:"gross_margin"`
	OperatingMargin  *float64        `json:"operating_margin" db:"operating_margin"`
	NetMargin        *float64        `json:"net_margin" db:"net_margin"`
	ROE              *float64        `json:"roe" db:"roe"`
	DividendYield    *float64        `json:"dividend_yield" db:"dividend_yield"`
	GFScore          *string         `json:"gf_score" db:"gf_score"`
	AltmanZScore     *float64        `json:"altman_z_score" db:"altman_z_score"`
	PiotroskiScore   *string         `json:"piotroski_score" db:"piotroski_score"`
	PriceTarget      *string         `json:"price_target" db:"price_target"`
	AnalystRating    *string         `json:"analyst_rating" db:"analyst_rating"`
	ConclusionEN     *string         `json:"conclusion_en" db:"conclusion_en"`
	ConclusionES     *string         `json:"conclusion_es" db:"conclusion_es"`
	Rating           Rating          `json:"rating" db:"rating"`
	Sentiment        Sentiment       `json:"sentiment" db:"sentiment"`
	Sources          json.RawMessage `json:"sources" db:"sources"`
	RawData          json.RawMessage `json:"raw_data" db:"raw_data"`
	ID               int64           `json:"id" db:"id"`
	StockID          int64           `json:"stock_id" db:"stock_id"`
}

// Fundamentals is the normalized partial record a fundamentals provider
// returns for one symbol. Every field is optional; nil means the provider
// did not supply it, never zero.
type Fundamentals struct {
	Price                *float64 `json:"price,omitempty"`
	MarketCap            *float64 `json:"market_cap,omitempty"`
	PETrailing           *float64 `json:"pe_trailing,omitempty"`
	PEForward            *float64 `json:"pe_forward,omitempty"`
	PEGRatio             *float64 `json:"peg_ratio,omitempty"`
	DebtToEquity         *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio         *float64 `json:"current_ratio,omitempty"`
	QuickRatio           *float64 `json:"quick_ratio,omitempty"`
	InterestCoverage     *float64 `json:"interest_coverage,omitempty"`
	TotalCash            *float64 `json:"total_cash,omitempty"`
	TotalDebt            *float64 `json:"total_debt,omitempty"`
	FreeCashFlow         *float64 `json:"free_cash_flow,omitempty"`
	GrossMargin          *float64 `json:"gross_margin,omitempty"`
	OperatingMargin      *float64 `json:"operating_margin,omitempty"`
	ProfitMargin         *float64 `json:"profit_margin,omitempty"`
	ROE                  *float64 `json:"roe,omitempty"`
	DividendYield        *float64 `json:"dividend_yield,omitempty"`
	Beta                 *float64 `json:"beta,omitempty"`
	TargetMeanPrice      *float64 `json:"target_mean_price,omitempty"`
	FiftyDayAverage      *float64 `json:"fifty_day_average,omitempty"`
	TwoHundredDayAverage *float64 `json:"two_hundred_day_average,omitempty"`
	AltmanZScore         *float64 `json:"altman_z_score,omitempty"`
	RecommendationKey    *string  `json:"recommendation_key,omitempty"`
	GFScore              *string  `json:"gf_score,omitempty"`
	PiotroskiScore       *string  `json:"piotroski_score,omitempty"`
	Name                 *string  `json:"name,omitempty"`
	Sector               *string  `json:"sector,omitempty"`
	Industry             *string  `json:"industry,omitempty"`
}
