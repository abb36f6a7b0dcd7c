// Package config loads the urolinq configuration from an optional YAML file,
// UROLINQ_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Archive drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete runtime configuration.
type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ArchiveConfig selects where scored results are kept.
type ArchiveConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Driver      string `mapstructure:"driver"`       // sqlite | postgres
	DatabaseURL string `mapstructure:"database_url"` // postgres only
}

// CacheConfig configures the result read cache.
type CacheConfig struct {
	MaxItems    int           `mapstructure:"max_items"`
	RedisURL    string        `mapstructure:"redis_url"` // empty disables the Redis tier
	TTL         time.Duration `mapstructure:"ttl"`
	PoolSize    int           `mapstructure:"pool_size"`
	PoolTimeout time.Duration `mapstructure:"pool_timeout"`
}

// LoggingConfig configures the logrus logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | text
}

// OutputConfig configures terminal output.
type OutputConfig struct {
	Color string `mapstructure:"color"` // auto | always | never
}

// Manager loads configuration using Viper
type Manager struct {
	v      *viper.Viper
	config *Config
}

// NewManager loads configuration. configFile may be empty, in which case
// config.yaml is looked up in ., ./config and $HOME/.urolinq.
func NewManager(configFile string) (*Manager, error) {
	m := &Manager{v: viper.New()}
	if err := m.load(configFile); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

func (m *Manager) load(configFile string) error {
	v := m.v

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".urolinq"))
		}
	}

	v.SetEnvPrefix("UROLINQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional unless named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("data_dir", filepath.Join(homeDir, ".urolinq"))

	v.SetDefault("archive.enabled", true)
	v.SetDefault("archive.driver", DriverSQLite)
	v.SetDefault("archive.database_url", "")

	v.SetDefault("cache.max_items", 256)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.pool_timeout", "4s")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.color", ColorAuto)
}

// Config returns the loaded configuration
func (m *Manager) Config() *Config {
	return m.config
}

// ConfigFileUsed returns the path of the config file read, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}

	switch c.Archive.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Archive.Enabled && c.Archive.DatabaseURL == "" {
			return fmt.Errorf("archive.database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid archive driver: %s", c.Archive.Driver)
	}

	if c.Cache.MaxItems < 0 {
		return fmt.Errorf("invalid cache size: %d", c.Cache.MaxItems)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode: %s", c.Output.Color)
	}

	return nil
}

// ResultsDBPath returns the path to the results SQLite database.
func (c *Config) ResultsDBPath() string {
	return filepath.Join(c.DataDir, "results.db")
}

// ExportDir returns the directory for JSON exports.
func (c *Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.ExportDir(), 0755)
}
