// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Mailbox    MailboxConfig    `mapstructure:"mailbox"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// MailboxConfig holds the IMAP source settings.
type MailboxConfig struct {
	Address      string `mapstructure:"address"` // host:port, TLS
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Folder       string `mapstructure:"folder"`
	SenderFilter string `mapstructure:"sender_filter"` // From-header search term
}

type DatabaseConfig struct {
	Mongo MongoConfig `mapstructure:"mongo"`
	Redis RedisConfig `mapstructure:"redis"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ExtractionConfig holds the oracle settings.
type ExtractionConfig struct {
	Gemini       GeminiConfig `mapstructure:"gemini"`
	MaxBodyChars int          `mapstructure:"max_body_chars"`
	Timeout      int          `mapstructure:"timeout"` // milliseconds
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// RequestTimeout returns the per-extraction deadline.
func (e ExtractionConfig) RequestTimeout() time.Duration {
	return time.Duration(e.Timeout) * time.Millisecond
}

// SyncConfig holds the settings of one sync pass.
type SyncConfig struct {
	BatchSize    int `mapstructure:"batch_size"`     // latest N messages per pass
	SeenTTLHours int `mapstructure:"seen_ttl_hours"` // dedupe retention
}

// SeenTTL returns how long processed Message-IDs are remembered.
func (s SyncConfig) SeenTTL() time.Duration {
	return time.Duration(s.SeenTTLHours) * time.Hour
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
