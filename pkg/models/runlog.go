package models

import "time"

// ScrapingLog is the append-only audit record of one coordinator run.
// Rows are never updated after creation.
type ScrapingLog struct {
	Timestamp       time.Time `json:"timestamp" db:"ts"`
	ErrorMessage    *string   `json:"error_message" db:"error_message"`
	DurationSeconds *float64  `json:"duration_seconds" db:"duration_seconds"`
	Source          string    `json:"source" db:"source"`
	TaskType        TaskType  `json:"task_type" db:"task_type"`
	Status          RunStatus `json:"status" db:"status"`
	ItemsScraped    int       `json:"items_scraped" db:"items_scraped"`
	ID              int64     `json:"id" db:"id"`
}

// ReportCache memoizes one generated report per (report_type, language).
// Regeneration overwrites the existing row.
type ReportCache struct {
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
	ReportType  string    `json:"report_type" db:"report_type"`
	Language    string    `json:"language" db:"language"`
	Content     []byte    `json:"content" db:"content"`
	ID          int64     `json:"id" db:"id"`
}
