// Package config loads the host tool configuration
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"dhmeter/host/serial"
)

var (
	ErrNoDevice   = errors.New("serial device is required")
	ErrBadBaud    = errors.New("baud rate must be positive")
	ErrTickFreq   = errors.New("tick frequency must be positive")
	ErrExpression = errors.New("expression is required")
)

// Serial describes the port the meter is attached to
type Serial struct {
	Device            string `yaml:"device" default:"/dev/ttyUSB0"`
	Baud              int    `yaml:"baud" default:"115200"`
	ReadTimeoutMillis int    `yaml:"read_timeout_ms" default:"100"`
}

// Export controls spreadsheet output
type Export struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet" default:"Readings"`
}

// Config is the host tool configuration file
type Config struct {
	Serial Serial `yaml:"serial"`

	// TickFreq is used until the meter identifies itself
	TickFreq uint32 `yaml:"tick_freq" default:"16000000"`

	// Expression derives a value from hz, pulses and gate_ms
	Expression string `yaml:"expression" default:"hz"`
	Unit       string `yaml:"unit" default:"Hz"`

	Export   Export `yaml:"export"`
	LogLevel string `yaml:"log_level" default:"info"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Parse decodes YAML on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads a configuration file; an empty path yields the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Serial.Device == "" {
		return ErrNoDevice
	}
	if c.Serial.Baud <= 0 {
		return ErrBadBaud
	}
	if c.TickFreq == 0 {
		return ErrTickFreq
	}
	if c.Expression == "" {
		return ErrExpression
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// SerialConfig converts to the serial package configuration
func (c *Config) SerialConfig() *serial.Config {
	return &serial.Config{
		Device:      c.Serial.Device,
		Baud:        c.Serial.Baud,
		ReadTimeout: c.Serial.ReadTimeoutMillis,
	}
}
