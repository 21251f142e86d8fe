// Package config loads ktail's optional configuration file and environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
)

// Config represents the top-level ktail configuration
type Config struct {
	// HistorySize is the number of messages retained for search
	HistorySize int `yaml:"history_size"`

	// ChannelCapacity bounds the shared worker channel
	ChannelCapacity int `yaml:"channel_capacity"`

	// TickMillis is the control loop polling interval in milliseconds
	TickMillis int `yaml:"tick_ms"`

	// NoColor disables colored output
	NoColor bool `yaml:"no_color"`

	// EnvFile points to an optional .env file layered over the config
	EnvFile string `yaml:"env_file"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		HistorySize:     constants.DefaultHistorySize,
		ChannelCapacity: constants.DefaultChannelCapacity,
		TickMillis:      int(constants.DefaultTick / time.Millisecond),
	}
}

// Tick returns the polling interval as a duration
func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Validate checks the configuration for nonsensical values
func (c Config) Validate() error {
	if c.HistorySize <= 0 {
		return fmt.Errorf("%w: history_size must be positive, got %d", domain.ErrInvalidConfig, c.HistorySize)
	}
	if c.ChannelCapacity <= 0 {
		return fmt.Errorf("%w: channel_capacity must be positive, got %d", domain.ErrInvalidConfig, c.ChannelCapacity)
	}
	if c.TickMillis <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", domain.ErrInvalidConfig, c.TickMillis)
	}
	return nil
}

// Load reads the configuration file at path, layers environment overrides on
// top, and validates the result. A missing file is not an error unless
// explicit is true (the operator named the path on the command line).
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if explicit {
			return cfg, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
	}

	env, err := loadEnv(cfg.EnvFile)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from KTAIL_* variables
func applyEnv(cfg *Config, env map[string]string) error {
	if v, ok := env["KTAIL_HISTORY_SIZE"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KTAIL_HISTORY_SIZE: %v", domain.ErrInvalidConfig, err)
		}
		cfg.HistorySize = n
	}
	if v, ok := env["KTAIL_CHANNEL_CAPACITY"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KTAIL_CHANNEL_CAPACITY: %v", domain.ErrInvalidConfig, err)
		}
		cfg.ChannelCapacity = n
	}
	if v, ok := env["KTAIL_TICK_MS"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KTAIL_TICK_MS: %v", domain.ErrInvalidConfig, err)
		}
		cfg.TickMillis = n
	}
	if v, ok := env["KTAIL_NO_COLOR"]; ok {
		cfg.NoColor = v == "1" || v == "true"
	}
	return nil
}
