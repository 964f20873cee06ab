package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPrice is one immutable price point for a stock
type StockPrice struct {
	Timestamp     time.Time        `json:"timestamp" db:"ts"`
	Change        *decimal.Decimal `json:"change" db:"change"`
	ChangePercent *decimal.Decimal `json:"change_percent" db:"change_percent"`
	Volume        *int64           `json:"volume" db:"volume"`
	MarketCap     *decimal.Decimal `json:"market_cap" db:"market_cap"`
	PERatio       *decimal.Decimal `json:"pe_ratio" db:"pe_ratio"`
	Source        string           `json:"source" db:"source"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	ID            int64            `json:"id" db:"id"`
	StockID       int64            `json:"stock_id" db:"stock_id"`
}

// IndexPrice is one immutable level point for a market index
type IndexPrice struct {
	Timestamp     time.Time        `json:"timestamp" db:"ts"`
	Change        *decimal.Decimal `json:"change" db:"change"`
	ChangePercent *decimal.Decimal `json:"change_percent" db:"change_percent"`
	Source        string           `json:"source" db:"source"`
	Level         decimal.Decimal  `json:"level" db:"level"`
	ID            int64            `json:"id" db:"id"`
	IndexID       int64            `json:"index_id" db:"index_id"`
}

// Quote is the normalized partial record a price provider returns for a
// stock. Nil fields mean the provider did not supply a value.
type Quote struct {
	Price         *float64
	Change        *float64
	ChangePercent *float64
	Volume        *int64
	MarketCap     *float64
	PETrailing    *float64
	Source        string
}

// IndexQuote is the normalized partial record for an index level
type IndexQuote struct {
	Level         *float64
	Change        *float64
	ChangePercent *float64
	Source        string
}

// Candle is one daily bar of historical price data
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
