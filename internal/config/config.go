// Package config handles application configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the server configuration. Precedence, lowest first: Defaults,
// the CONFIG_FILE YAML overlay, environment variables.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" yaml:"listen_addr"`
	StoreDriver string `env:"STORE_DRIVER" yaml:"store_driver"`
	MetaDBPath  string `env:"META_DB_PATH" yaml:"meta_db_path"` // SQLite file
	DatabaseURL string `env:"DATABASE_URL" yaml:"database_url"` // PostgreSQL DSN
	LogLevel    string `env:"LOG_LEVEL" yaml:"log_level"`
	Env         string `env:"ENV" yaml:"env"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" yaml:"rate_limit_rps"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" yaml:"rate_limit_burst"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," yaml:"cors_allowed_origins"`

	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE" yaml:"default_page_size"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		ListenAddr:         ":8080",
		StoreDriver:        DriverSQLite,
		MetaDBPath:         "roster.sqlite",
		LogLevel:           "info",
		Env:                "development",
		RateLimitRPS:       100,
		RateLimitBurst:     200,
		CORSAllowedOrigins: []string{"*"},
		DefaultPageSize:    25,
		ShutdownTimeout:    15 * time.Second,
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
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

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// NewLogger builds the process logger: JSON in production, text otherwise.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverSQLite:
		if c.MetaDBPath == "" {
			errs = append(errs, errors.New("META_DB_PATH is required for the sqlite store"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE must be at least 1, got %d", c.DefaultPageSize))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.IsProduction() && len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*" {
		errs = append(errs, errors.New("CORS wildcard (*) is not allowed in production (ENV=production)"))
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for the configured SQL driver.
func (c *Config) DSN() string {
	if c.StoreDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.MetaDBPath
}

// LoadFromEnv loads configuration from CONFIG_FILE and the environment, then
// validates it.
func LoadFromEnv() (*Config, error) {
	d := Defaults()
	cfg := &d
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(cfg.CORSAllowedOrigins[i])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-controlled
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setenv %s: %w", key, err)
		}
	}
	return nil
}
