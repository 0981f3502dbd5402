package config

import (
	"os"

	"github.com/ccollicutt/pxlog/pkg/template"
)

// Default values for configuration.
const (
	DefaultColor      = ColorAlways
	DefaultOutput     = OutputText
	DefaultConfigPath = "~/.config/pxlog/config.yaml"
)

// Environment variable names.
const (
	EnvFormat = "PX_LOG_FORMAT"
	EnvColor  = "PX_LOG_COLOR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format: template.DefaultFormat,
		Color:  DefaultColor,
		Output: DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if format := os.Getenv(EnvFormat); format != "" {
		c.Format = format
	}
	if color := os.Getenv(EnvColor); color != "" {
		c.Color = ColorMode(color)
	}
}
