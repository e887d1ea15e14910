// Package config loads fintrack's settings.
//
// Sources are applied in order, later ones winning: built-in defaults, a
// .env file in the working directory, an optional YAML file, and FINTRACK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// Config holds the application configuration.
type Config struct {
	// DBPath is the SQLite file holding the key-value store.
	DBPath string `yaml:"db_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// AuthDelay is the pause before a signup or login completes.
	AuthDelay time.Duration `yaml:"auth_delay"`

	// Currency is the ISO 4217 code amounts are displayed in.
	Currency string `yaml:"currency"`

	TrendMonths   int `yaml:"trend_months"`
	RecentLimit   int `yaml:"recent_limit"`
	DueWindowDays int `yaml:"due_window_days"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DBPath:        "./data/fintrack.db",
		LogLevel:      "warn",
		LogFormat:     "text",
		AuthDelay:     1500 * time.Millisecond,
		Currency:      money.USD,
		TrendMonths:   6,
		RecentLimit:   5,
		DueWindowDays: 7,
	}
}

// Load builds the configuration. An empty path falls back to
// FINTRACK_CONFIG; when neither is set no YAML file is read.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("FINTRACK_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DBPath = getEnv("FINTRACK_DB_PATH", c.DBPath)
	c.LogLevel = getEnv("FINTRACK_LOG_LEVEL", getEnv("LOG_LEVEL", c.LogLevel))
	c.LogFormat = getEnv("FINTRACK_LOG_FORMAT", getEnv("LOG_FORMAT", c.LogFormat))
	c.Currency = strings.ToUpper(getEnv("FINTRACK_CURRENCY", c.Currency))

	if v := os.Getenv("FINTRACK_AUTH_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FINTRACK_AUTH_DELAY: %w", err)
		}
		c.AuthDelay = d
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FINTRACK_TREND_MONTHS", &c.TrendMonths},
		{"FINTRACK_RECENT_LIMIT", &c.RecentLimit},
		{"FINTRACK_DUE_WINDOW_DAYS", &c.DueWindowDays},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json; got %q", c.LogFormat)
	}
	if c.AuthDelay < 0 {
		return fmt.Errorf("auth_delay must not be negative")
	}
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	if c.TrendMonths < 1 || c.TrendMonths > 24 {
		return fmt.Errorf("trend_months must be between 1 and 24")
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be positive")
	}
	if c.DueWindowDays < 0 {
		return fmt.Errorf("due_window_days must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
