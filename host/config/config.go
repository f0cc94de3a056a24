// Package config loads the glove host configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hapticglove/host/serial"
)

// Environment variables that override the config file
const (
	EnvLeftPort  = "HAPTIC_LEFT_PORT"
	EnvRightPort = "HAPTIC_RIGHT_PORT"
	EnvLogLevel  = "HAPTIC_LOG_LEVEL"
)

// Config is the glove host configuration
type Config struct {
	LeftPort  string        `yaml:"left_port"`
	RightPort string        `yaml:"right_port"`
	Serial    SerialConfig  `yaml:"serial"`
	Logging   LoggingConfig `yaml:"logging"`
}

// SerialConfig is the line setup shared by both gloves
type SerialConfig struct {
	Baud     int    `yaml:"baud"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`
	Backend  string `yaml:"backend"`
}

// LoggingConfig configures zap
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LeftPort:  "",
		RightPort: "",
		Serial: SerialConfig{
			Baud:     9600,
			DataBits: 8,
			Parity:   "N",
			StopBits: 1,
			Backend:  string(serial.BackendTarm),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLeftPort); v != "" {
		c.LeftPort = v
	}
	if v := os.Getenv(EnvRightPort); v != "" {
		c.RightPort = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the serial and logging settings
func (c *Config) Validate() error {
	// Device is filled per side at open time
	probe := c.SerialConfig()
	probe.Device = "probe"
	if _, err := probe.Normalize(); err != nil {
		return fmt.Errorf("invalid serial config: %w", err)
	}

	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	return nil
}

// SerialConfig converts the shared line setup into a serial.Config without a device
func (c *Config) SerialConfig() serial.Config {
	return serial.Config{
		Baud:     c.Serial.Baud,
		DataBits: c.Serial.DataBits,
		Parity:   c.Serial.Parity,
		StopBits: c.Serial.StopBits,
		Backend:  serial.Backend(strings.ToLower(strings.TrimSpace(c.Serial.Backend))),
	}
}

// BuildLogger creates the zap logger described by the logging section.
// verbose forces debug level.
func (c *Config) BuildLogger(verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if c.Logging.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	if verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapConfig.Level = level

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
