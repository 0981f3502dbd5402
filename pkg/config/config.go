package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pxlog/pkg/template"
)

// Load reads and validates a configuration file. An empty path loads
// DefaultConfigPath if it exists and falls back to defaults otherwise.
// Files ending in .toml are read as TOML, anything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	resolved, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	data, err := os.ReadFile(resolved) // #nosec G304 -- user-provided config path is expected
	switch {
	case err == nil:
		if err := decode(resolved, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case !explicit && errors.Is(err, os.ErrNotExist):
		// no config file, defaults apply
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors and compiles the format.
func Validate(cfg *Config) error {
	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	switch cfg.Color {
	case ColorAlways, ColorAuto, ColorNever:
	default:
		return fmt.Errorf("color: invalid mode %q (must be always, auto, or never)", cfg.Color)
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	switch cfg.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output: invalid kind %q (must be text or json)", cfg.Output)
	}

	cfg.Format = expandEnvVar(cfg.Format)
	if cfg.Format == "" {
		return errors.New("format: must not be empty")
	}
	tmpl, err := template.Parse(cfg.Format)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	cfg.compiledFormat = tmpl

	return nil
}

// ApplyFlags overrides the configuration with command-line settings and
// validates the result. An explicit format wins; otherwise the time column
// shorthands rewrite the configured format, absolute time first.
func (c *Config) ApplyFlags(f Flags) error {
	switch {
	case f.Format != "":
		c.Format = f.Format
	case f.AscTime:
		c.Format = template.UseAscTime(c.Format)
	case f.RelTime:
		c.Format = template.UseRelTime(c.Format)
	}
	if f.Color != "" {
		c.Color = ColorMode(f.Color)
	}
	if f.Output != "" {
		c.Output = OutputKind(f.Output)
	}
	return Validate(c)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Only a value consisting entirely of a variable reference is expanded, so
// formats containing "$" elsewhere are left alone.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") && !strings.ContainsAny(s, " %") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
