package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Database  DatabaseConfig  `envconfig:"DATABASE"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	Archive   ArchiveConfig   `envconfig:"ARCHIVE"`
	Update    UpdateConfig    `envconfig:"UPDATE"`
	Retention RetentionConfig `envconfig:"RETENTION"`
	Telegram  TelegramConfig  `envconfig:"TELEGRAM"`
	API       APIConfig       `envconfig:"API"`
	Logging   LoggingConfig   `envconfig:"LOGGING"`

	// SymbolsFile points to the YAML file listing tracked stocks and indices
	SymbolsFile string `envconfig:"SYMBOLS_FILE" default:"config/symbols.yaml"`
}

// DatabaseConfig represents Postgres connection parameters
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"marketstock"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Pool sizing. The update loops are sequential, so the pool mostly
	// serves the API; the defaults stay small.
	MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnLifetime time.Duration `envconfig:"DB_CONN_LIFETIME" default:"30m"`
}

// RedisConfig represents the optional Redis instance used for the
// per-domain run lock. Disabled when Host is empty.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:""`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled reports whether the Redis run lock is configured
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// ArchiveConfig represents the optional ClickHouse price history archive
type ArchiveConfig struct {
	Enabled  bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Host     string `envconfig:"ARCHIVE_HOST" default:"localhost"`
	Port     int    `envconfig:"ARCHIVE_PORT" default:"9000"`
	Database string `envconfig:"ARCHIVE_DATABASE" default:"marketstock"`
	User     string `envconfig:"ARCHIVE_USER" default:"default"`
	Password string `envconfig:"ARCHIVE_PASSWORD" default:""`
}

// UpdateConfig holds per-domain update intervals
type UpdateConfig struct {
	PriceInterval    time.Duration `envconfig:"UPDATE_PRICE_INTERVAL" default:"1m"`
	NewsInterval     time.Duration `envconfig:"UPDATE_NEWS_INTERVAL" default:"5m"`
	AnalysisInterval time.Duration `envconfig:"UPDATE_ANALYSIS_INTERVAL" default:"60m"`
	CleanupInterval  time.Duration `envconfig:"UPDATE_CLEANUP_INTERVAL" default:"24h"`

	// MarketNewsSymbols are the index symbols polled for market-wide news
	MarketNewsSymbols []string `envconfig:"UPDATE_MARKET_NEWS_SYMBOLS" default:"^GSPC,^DJI,^IXIC"`
}

// RetentionConfig holds cleanup windows in days, each bound independently
type RetentionConfig struct {
	PriceDays    int `envconfig:"RETENTION_PRICE_DAYS" default:"30"`
	LogDays      int `envconfig:"RETENTION_LOG_DAYS" default:"30"`
	NewsDays     int `envconfig:"RETENTION_NEWS_DAYS" default:"60"`
	AnalysisDays int `envconfig:"RETENTION_ANALYSIS_DAYS" default:"90"`
}

// TelegramConfig represents optional run alerting. Disabled when the
// token is empty.
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" default:"0"`
}

// Enabled reports whether Telegram alerting is configured
func (c *TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// APIConfig represents the HTTP API listener
type APIConfig struct {
	Addr string `envconfig:"API_ADDR" default:":8080"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Update.PriceInterval <= 0 || c.Update.NewsInterval <= 0 || c.Update.AnalysisInterval <= 0 {
		return fmt.Errorf("update intervals must be positive")
	}

	if c.Retention.PriceDays < 1 || c.Retention.LogDays < 1 ||
		c.Retention.NewsDays < 1 || c.Retention.AnalysisDays < 1 {
		return fmt.Errorf("retention windows must be at least one day")
	}

	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when bot token is set")
	}

	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
