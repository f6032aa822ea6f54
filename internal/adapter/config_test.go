package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
omdb:
  api_key: abc123
  timeout: 5s
storage:
  path: /tmp/x.db
  watched_key: mine
ui:
  max_rating: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.OMDb.APIKey)
	assert.Equal(t, 5*time.Second, cfg.OMDb.Timeout)
	assert.Equal(t, "https://www.omdbapi.com/", cfg.OMDb.URL)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	assert.Equal(t, "mine", cfg.Storage.WatchedKey)
	assert.Equal(t, 5, cfg.UI.MaxRating)
	assert.Equal(t, 3, cfg.UI.MinQueryLength)
	assert.Equal(t, 5.0, cfg.OMDb.RateLimit)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 3, cfg.Logging.MaxBackups)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("omdb:\n  api_key: fromfile\n"), 0644))
	t.Setenv("POPCORN_OMDB_API_KEY", "fromenv")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.OMDb.APIKey)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.OMDb.APIKey = "k"
	cfg.Storage.WatchedKey = "films"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.OMDb, loaded.OMDb)
	assert.Equal(t, cfg.Storage, loaded.Storage)
	assert.Equal(t, cfg.UI, loaded.UI)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.OMDb.URL = "not a url" }},
		{"zero timeout", func(c *Config) { c.OMDb.Timeout = 0 }},
		{"negative rate limit", func(c *Config) { c.OMDb.RateLimit = -1 }},
		{"empty key", func(c *Config) { c.Storage.WatchedKey = " " }},
		{"zero stars", func(c *Config) { c.UI.MaxRating = 0 }},
		{"zero min query", func(c *Config) { c.UI.MinQueryLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
	assert.False(t, DefaultConfig().IsConfigured())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "popcorn.log")
	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("hello", "k", "v")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := SetupLogger(&LoggingConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeLog())
}
