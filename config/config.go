package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings path relative to the XDG config directories.
const SettingsFile = "grcat/config.yaml"

type Config struct {
	Logging LogConfig     `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level      string `yaml:"level"`    // debug, info, warn, error
	Encoding   string `yaml:"encoding"` // console or json
	File       string `yaml:"file"`     // empty logs to stderr
	MaxSize    int    `yaml:"maxSize"`  // megabytes
	MaxAge     int    `yaml:"maxAge"`   // days
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type OutputConfig struct {
	Colour  string `yaml:"colour"`  // always, auto, never
	Replace string `yaml:"replace"` // positional, first-occurrence
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile target, empty disables
}

const (
	ColourAlways = "always"
	ColourAuto   = "auto"
	ColourNever  = "never"

	ReplacePositional      = "positional"
	ReplaceFirstOccurrence = "first-occurrence"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads and parses the settings file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadDefault loads the settings file from the XDG config directories, falling
// back to defaults when none exists.
func LoadDefault() (*Config, error) {
	path, err := xdg.SearchConfigFile(SettingsFile)
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// LoadOrDefault loads path when given, otherwise behaves like LoadDefault.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return LoadDefault()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}
	return Load(path)
}

func (c *Config) setDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = "console"
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = 10
	}
	if c.Logging.MaxAge <= 0 {
		c.Logging.MaxAge = 7
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}

	if c.Output.Colour == "" {
		c.Output.Colour = ColourAlways
	}
	if c.Output.Replace == "" {
		c.Output.Replace = ReplacePositional
	}
}

// validateConfig performs validation of all configuration values
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s", cfg.Logging.Encoding)
	}

	switch cfg.Output.Colour {
	case ColourAlways, ColourAuto, ColourNever:
	default:
		return fmt.Errorf("invalid colour mode: %s", cfg.Output.Colour)
	}

	switch cfg.Output.Replace {
	case ReplacePositional, ReplaceFirstOccurrence:
	default:
		return fmt.Errorf("invalid replace mode: %s", cfg.Output.Replace)
	}

	return nil
}

// ApplyOverrides applies command line flag overrides to the configuration and
// validates the result.
func (c *Config) ApplyOverrides(logLevel, colour, replace, metricsTextfile string) error {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if colour != "" {
		c.Output.Colour = colour
	}
	if replace != "" {
		c.Output.Replace = replace
	}
	if metricsTextfile != "" {
		c.Metrics.Textfile = metricsTextfile
	}
	return validateConfig(c)
}
