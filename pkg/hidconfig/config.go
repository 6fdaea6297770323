// Package hidconfig holds hidrd's runtime configuration: where to find HID
// Usage Table files, how verbosely to log, and the default output format
// for the CLI.
package hidconfig

import (
	"fmt"
	"os"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds hidrd's runtime configuration.
type Config struct {
	// HUTDir is the directory containing .hut Usage Table files.
	HUTDir string `yaml:"hut_dir" default:"/usr/share/hidrd/hut"`
	// LogLevel is a logrus level name: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" default:"info"`
	// OutputFormat names a rendering, "text" or "json". It is loaded and
	// saved with the config; no CLI command reads it.
	OutputFormat string `yaml:"output_format" default:"text"`
	// Win8Strict is loaded and saved with the config; no decoding or CLI
	// code reads it, so it does not change how descriptors are decoded.
	Win8Strict bool `yaml:"win8_strict" default:"false"`
}

// DefaultConfig returns Config populated with its struct-tag defaults.
func DefaultConfig() *Config {
	c := &Config{}
	defaults.SetDefaults(c)
	return c
}

// Load reads a YAML config file at path, starting from DefaultConfig and
// overriding any field the file sets explicitly.
func Load(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hidconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("hidconfig: parsing %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("hidconfig: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("hidconfig: writing %s: %w", path, err)
	}
	return nil
}

// NewLogger builds a logrus.Logger configured from c.LogLevel, falling back
// to Info on an unrecognized level name.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}
