// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like MAILBOX_PASSWORD, DATABASE_MONGO_URI
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overrides, optional
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from the working directory or any parent up to the module root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Expand ${VAR} placeholders left in yaml values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Mailbox.Username == "" {
		if val := os.Getenv("MAILBOX_USERNAME"); val != "" {
			cfg.Mailbox.Username = val
		}
	}
	if cfg.Mailbox.Password == "" {
		if val := os.Getenv("MAILBOX_PASSWORD"); val != "" {
			cfg.Mailbox.Password = val
		}
	}
	if cfg.Database.Mongo.URI == "" {
		if val := os.Getenv("MONGO_URI"); val != "" {
			cfg.Database.Mongo.URI = val
		}
	}
	if cfg.Extraction.Gemini.APIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Extraction.Gemini.APIKey = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "booking-sync"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Mailbox.Address == "" {
		cfg.Mailbox.Address = "imap.gmail.com:993"
	}
	if cfg.Mailbox.Folder == "" {
		cfg.Mailbox.Folder = "INBOX"
	}
	if cfg.Mailbox.SenderFilter == "" {
		cfg.Mailbox.SenderFilter = "notification.getyourguide.com"
	}
	if cfg.Database.Mongo.URI == "" {
		cfg.Database.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Database.Mongo.Database == "" {
		cfg.Database.Mongo.Database = "Tour"
	}
	if cfg.Database.Mongo.Collection == "" {
		cfg.Database.Mongo.Collection = "bookings"
	}
	if cfg.Extraction.Gemini.Model == "" {
		cfg.Extraction.Gemini.Model = "models/gemini-1.5-pro"
	}
	if cfg.Extraction.MaxBodyChars == 0 {
		cfg.Extraction.MaxBodyChars = 4000
	}
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30000
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = 5
	}
	if cfg.Sync.SeenTTLHours == 0 {
		cfg.Sync.SeenTTLHours = 14 * 24
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9091"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Mailbox.Username == "" || cfg.Mailbox.Password == "" {
		return fmt.Errorf("mailbox credentials are required (MAILBOX_USERNAME / MAILBOX_PASSWORD)")
	}
	if cfg.Extraction.Gemini.APIKey == "" {
		return fmt.Errorf("extraction oracle API key is required (GEMINI_API_KEY)")
	}
	if cfg.Sync.BatchSize < 1 {
		return fmt.Errorf("sync batch_size must be positive, got %d", cfg.Sync.BatchSize)
	}
	return nil
}
