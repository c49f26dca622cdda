package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend names
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// DefaultFlushDelay is the snapshot batching delay used when none is configured
const DefaultFlushDelay = 5 * time.Second

// Config is the process configuration read from CANDY_* environment variables
type Config struct {
	Host     string `env:"CANDY_HOST" envDefault:"0.0.0.0"`
	Port     int    `env:"CANDY_PORT" envDefault:"8080"`
	LogLevel string `env:"CANDY_LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"CANDY_TIMEZONE" envDefault:"UTC"`

	StorageType string        `env:"CANDY_STORAGE_TYPE" envDefault:"file"`
	DataDir     string        `env:"CANDY_DATA_DIR" envDefault:"data"`
	Compress    bool          `env:"CANDY_COMPRESS" envDefault:"false"`
	RedisURL    string        `env:"CANDY_REDIS_URL"`
	SQLitePath  string        `env:"CANDY_SQLITE_PATH" envDefault:"data/candy.db"`
	FlushDelay  time.Duration `env:"CANDY_FLUSH_DELAY" envDefault:"5s"`

	TuningPath string `env:"CANDY_TUNING_FILE"`

	// APITokenHash is the bcrypt hash of the bearer token the chat transport presents.
	// Empty disables authentication.
	APITokenHash string `env:"CANDY_API_TOKEN_HASH"`

	GatewayURL   string `env:"CANDY_GATEWAY_URL"`
	GatewayToken string `env:"CANDY_GATEWAY_TOKEN"`

	SweepSchedule string `env:"CANDY_SWEEP_SCHEDULE" envDefault:"@every 1m"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks option combinations that env tags cannot express
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeFile, StorageTypeSQLite:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("CANDY_REDIS_URL required when CANDY_STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid CANDY_STORAGE_TYPE %q", c.StorageType)
	}
	if c.FlushDelay <= 0 {
		return errors.New("CANDY_FLUSH_DELAY must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid CANDY_TIMEZONE: %w", err)
	}
	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Location returns the time zone used for calendar days
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
