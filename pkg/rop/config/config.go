// Package config loads runtime settings for programs built on the service
// packages: the core options, logging, the accounts database and metrics.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ib-77/ropsvc/pkg/rop/core"
)

const (
	EnvPrefix = "ROPSVC"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultDSN       = ":memory:"
)

type Config struct {
	Service  core.Config    `mapstructure:"service"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`

	// Path is the file the configuration was read from, empty when only
	// defaults and environment were used.
	Path string `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Database: DatabaseConfig{DSN: DefaultDSN},
	}
}

// Load reads path (YAML) when given, then applies ROPSVC_* environment
// overrides, e.g. ROPSVC_SERVICE_ENFORCE_INTERFACE=true.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("service.enforce_interface", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("database.dsn", DefaultDSN)
	v.SetDefault("metrics.enabled", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}

	return errors.Join(errs...)
}
