package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDbConfig holds movie database configuration
type OMDbConfig struct {
	URL       string        `mapstructure:"url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path       string `mapstructure:"path"`        // BoltDB file, empty = memory only
	WatchedKey string `mapstructure:"watched_key"` // Slot holding the watched list
}

// UIConfig holds UI configuration
type UIConfig struct {
	MaxRating      int    `mapstructure:"max_rating"`
	MinQueryLength int    `mapstructure:"min_query_length"`
	Browser        string `mapstructure:"browser"` // empty uses the system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			URL:       "https://www.omdbapi.com/",
			Timeout:   15 * time.Second,
			RateLimit: 5,
		},
		Storage: StorageConfig{
			Path:       filepath.Join(defaultDataPath(), "popcorn.db"),
			WatchedKey: "watched",
		},
		UI: UIConfig{
			MaxRating:      10,
			MinQueryLength: 3,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "popcorn.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the directory for logs and the database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "popcorn")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "popcorn")
	}
}

// newViper builds a viper instance seeded with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("omdb.url", def.OMDb.URL)
	v.SetDefault("omdb.api_key", def.OMDb.APIKey)
	v.SetDefault("omdb.timeout", def.OMDb.Timeout)
	v.SetDefault("omdb.rate_limit", def.OMDb.RateLimit)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.watched_key", def.Storage.WatchedKey)
	v.SetDefault("ui.max_rating", def.UI.MaxRating)
	v.SetDefault("ui.min_query_length", def.UI.MinQueryLength)
	v.SetDefault("ui.browser", def.UI.Browser)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)

	// POPCORN_OMDB_API_KEY overrides omdb.api_key
	v.SetEnvPrefix("POPCORN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment.
// An explicit path must exist; otherwise the default locations are searched
// and a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default config file when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("omdb.url", cfg.OMDb.URL)
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("omdb.rate_limit", cfg.OMDb.RateLimit)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.watched_key", cfg.Storage.WatchedKey)
	v.Set("ui.max_rating", cfg.UI.MaxRating)
	v.Set("ui.min_query_length", cfg.UI.MinQueryLength)
	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	u, err := url.Parse(c.OMDb.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid omdb.url %q", c.OMDb.URL)
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("omdb.timeout must be positive, got %s", c.OMDb.Timeout)
	}
	if c.OMDb.RateLimit < 0 {
		return fmt.Errorf("omdb.rate_limit must not be negative, got %v", c.OMDb.RateLimit)
	}
	if strings.TrimSpace(c.Storage.WatchedKey) == "" {
		return fmt.Errorf("storage.watched_key must not be empty")
	}
	if c.UI.MaxRating < 1 {
		return fmt.Errorf("ui.max_rating must be at least 1, got %d", c.UI.MaxRating)
	}
	if c.UI.MinQueryLength < 1 {
		return fmt.Errorf("ui.min_query_length must be at least 1, got %d", c.UI.MinQueryLength)
	}
	return nil
}

// IsConfigured returns true if an OMDb API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}
