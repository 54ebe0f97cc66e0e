// Package config holds the settings shared by the qso commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/qso/internal/logging"
	"github.com/aretw0/qso/pkg/adapters/redis"
	"github.com/aretw0/qso/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero values fall back to Default.
type Config struct {
	// Protocol is a protocol definition file. Empty means the built-in FT8 pounce table.
	Protocol string `yaml:"protocol"`

	// Threshold is the failure count above which a step reports the threshold event.
	Threshold int `yaml:"threshold"`

	// Separator splits decoder metadata from the message on each record line.
	Separator string `yaml:"separator"`

	LogLevel string `yaml:"log_level"`

	StopOnTerminal   bool `yaml:"stop_on_terminal"`
	AbortOnThreshold bool `yaml:"abort_on_threshold"`

	Redis  Redis  `yaml:"redis"`
	Server Server `yaml:"server"`
}

// Redis configures the Redis list message source.
type Redis struct {
	Addr      string        `yaml:"addr"`
	Key       string        `yaml:"key"`
	EndMarker string        `yaml:"end_marker"`
	Wait      time.Duration `yaml:"wait"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr      string `yaml:"addr"`
	QueueSize int    `yaml:"queue_size"`
	Metrics   bool   `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold: domain.DefaultFailureThreshold,
		Separator: domain.DefaultRecordSeparator,
		LogLevel:  "info",
		Redis: Redis{
			Addr: "localhost:6379",
			Key:  redis.DefaultKey,
		},
		Server: Server{
			Addr:      ":8080",
			QueueSize: 64,
			Metrics:   true,
		},
	}
}

// Load reads a YAML configuration file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must not be negative, got %d", c.Threshold))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.Wait < 0 {
		errs = append(errs, fmt.Errorf("redis.wait must not be negative, got %s", c.Redis.Wait))
	}
	if c.Server.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("server.queue_size must not be negative, got %d", c.Server.QueueSize))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() slog.Level {
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}
