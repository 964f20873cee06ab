package models

import "time"

// Stock represents a tracked stock
type Stock struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Symbol    string    `json:"symbol" db:"symbol"`
	Name      string    `json:"name" db:"name"`
	Sector    string    `json:"sector" db:"sector"`
	ID        int64     `json:"id" db:"id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

// Index represents a tracked market index
type Index struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Symbol    string    `json:"symbol" db:"symbol"`
	Name      string    `json:"name" db:"name"`
	ID        int64     `json:"id" db:"id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}
