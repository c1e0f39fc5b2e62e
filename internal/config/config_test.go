package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"CONFIG_FILE", "LISTEN_ADDR", "STORE_DRIVER", "META_DB_PATH", "DATABASE_URL", "LOG_LEVEL", "ENV",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "DEFAULT_PAGE_SIZE", "SHUTDOWN_TIMEOUT",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "roster.sqlite", cfg.MetaDBPath)
	assert.Equal(t, "roster.sqlite", cfg.DSN())
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.InDelta(t, 100, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://roster@localhost/roster")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEFAULT_PAGE_SIZE", "50")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "postgres://roster@localhost/roster", cfg.DSN())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_PAGE_SIZE", "many")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_YAMLOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"store_driver: memory\nlisten_addr: \":7000\"\ndefault_page_size: 10\nshutdown_timeout: 30s\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":7001")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":7001", cfg.ListenAddr, "environment overrides the file")
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel, "defaults survive the overlay")
}

func TestLoadFromEnv_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadFromEnv()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "memory needs nothing", mutate: func(c *Config) { c.StoreDriver = DriverMemory; c.MetaDBPath = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "mysql" }, wantErr: "unknown STORE_DRIVER"},
		{name: "sqlite without path", mutate: func(c *Config) { c.MetaDBPath = "" }, wantErr: "META_DB_PATH"},
		{name: "postgres without url", mutate: func(c *Config) { c.StoreDriver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "zero page size", mutate: func(c *Config) { c.DefaultPageSize = 0 }, wantErr: "DEFAULT_PAGE_SIZE"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "production wildcard cors", mutate: func(c *Config) { c.Env = "production" }, wantErr: "CORS wildcard"},
		{
			name:   "production explicit cors",
			mutate: func(c *Config) { c.Env = "Production"; c.CORSAllowedOrigins = []string{"https://roster.example"} },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "warning": slog.LevelWarn,
		"error": slog.LevelError, "info": slog.LevelInfo, "": slog.LevelInfo, "chatty": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Env: "production", LogLevel: "warn"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "kind", "role")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	cfg = Config{Env: "development"}
	cfg.NewLogger(&buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestLoadDotEnv_FileNotFound(t *testing.T) {
	assert.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nROSTER_TEST_A=plain\nexport ROSTER_TEST_B=\"quoted value\"\nROSTER_TEST_C='single'\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	for _, k := range []string{"ROSTER_TEST_A", "ROSTER_TEST_B", "ROSTER_TEST_C"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	require.NoError(t, LoadDotEnv(envFile))

	assert.Equal(t, "plain", os.Getenv("ROSTER_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("ROSTER_TEST_B"))
	assert.Equal(t, "single", os.Getenv("ROSTER_TEST_C"))
}

func TestLoadDotEnv_EnvVarPrecedence(t *testing.T) {
	t.Setenv("ROSTER_TEST_PRECEDENCE", "from_env")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ROSTER_TEST_PRECEDENCE=from_file\n"), 0o600))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from_env", os.Getenv("ROSTER_TEST_PRECEDENCE"))
}

func TestLoadDotEnv_DirectoryIsError(t *testing.T) {
	assert.Error(t, LoadDotEnv(t.TempDir()))
}
