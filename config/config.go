package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	HTTP          HTTPConfig          `yaml:"http"`
	Events        EventsConfig        `yaml:"events"`
	Observability ObservabilityConfig `yaml:"observability"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Money         MoneyConfig         `yaml:"money"`
}

// DatabaseConfig selects the store. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"` // apply pending migrations on startup
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per IP
	RateBurst       int           `yaml:"rate_burst"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// EventsConfig tunes the in-process event bus.
type EventsConfig struct {
	BufferSize int64 `yaml:"buffer_size"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json|text
	LogFile        string `yaml:"log_file"`   // empty logs to stderr
	LogMaxSizeMB   int    `yaml:"log_max_size_mb"`
	LogMaxBackups  int    `yaml:"log_max_backups"`
	LogMaxAgeDays  int    `yaml:"log_max_age_days"`
	MetricsAddress string `yaml:"metrics_address"`
}

// ScoringConfig overrides the point tables.
type ScoringConfig struct {
	NineHolePoints []int64 `yaml:"nine_hole_points"`
	OverallPoints  []int64 `yaml:"overall_points"`
}

// MoneyConfig holds the money round rules.
type MoneyConfig struct {
	UnitStakeCents     int64 `yaml:"unit_stake_cents"`
	AllowSplitWinnings bool  `yaml:"allow_split_winnings"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default returns a configuration that runs against a local SQLite file.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			DSN:          "file:frolf.db?_pragma=foreign_keys(1)",
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		HTTP: HTTPConfig{
			Address:         ":8080",
			RateLimit:       5,
			RateBurst:       20,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Events: EventsConfig{BufferSize: 64},
		Observability: ObservabilityConfig{
			ServiceName:   "frolf-scores",
			Environment:   "development",
			LogLevel:      "info",
			LogFormat:     "text",
			LogMaxSizeMB:  50,
			LogMaxBackups: 3,
			LogMaxAgeDays: 28,
		},
		Scoring: ScoringConfig{
			NineHolePoints: []int64{9, 6, 3, 2, 1},
			OverallPoints:  []int64{15, 10, 5, 3, 2},
		},
		Money: MoneyConfig{UnitStakeCents: 100},
	}
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables on top of the defaults.
func loadConfigFromEnv() (*Config, error) {
	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
		if strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://") {
			cfg.Database.Driver = DriverPostgres
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		cfg.Database.AutoMigrate = v == "true"
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Observability.LogFile = v
	}
	if v := os.Getenv("UNIT_STAKE_CENTS"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UNIT_STAKE_CENTS value: %w", err)
		}
		cfg.Money.UnitStakeCents = cents
	}
	if v := os.Getenv("ALLOW_SPLIT_WINNINGS"); v != "" {
		cfg.Money.AllowSplitWinnings = v == "true"
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.RateLimit = f
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q (want %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Money.UnitStakeCents <= 0 {
		return fmt.Errorf("money.unit_stake_cents must be positive, got %d", c.Money.UnitStakeCents)
	}
	if len(c.Scoring.NineHolePoints) == 0 || len(c.Scoring.OverallPoints) == 0 {
		return fmt.Errorf("scoring point tables must not be empty")
	}
	return nil
}

// IsTest reports whether the service runs under tests, which disables metric registration.
func (c *Config) IsTest() bool {
	return c.Observability.Environment == "test"
}
