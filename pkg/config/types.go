// Package config provides configuration loading and validation for pxlog.
package config

import (
	"github.com/ccollicutt/pxlog/pkg/template"
)

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Format is the output line template, e.g. "%(time)19s %(msg)s".
	Format string `yaml:"format" toml:"format"`

	// Color selects when ANSI colors are written.
	Color ColorMode `yaml:"color" toml:"color"`

	// Output selects the output kind.
	Output OutputKind `yaml:"output" toml:"output"`

	// compiledFormat is the parsed template (populated during validation).
	compiledFormat *template.Template
}

// Template returns the compiled format template.
func (c *Config) Template() *template.Template {
	return c.compiledFormat
}

// ColorMode determines when escape sequences are emitted.
type ColorMode string

const (
	// ColorAlways colors output regardless of the destination (default).
	ColorAlways ColorMode = "always"
	// ColorAuto colors output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"
)

// OutputKind selects how parsed lines are written.
type OutputKind string

const (
	// OutputText renders lines through the format template (default).
	OutputText OutputKind = "text"
	// OutputJSON writes each parsed line as a JSON object.
	OutputJSON OutputKind = "json"
)

// Flags are the command-line settings that override the configuration.
type Flags struct {
	Format  string // explicit template; wins over everything else
	AscTime bool   // swap the time column for absolute time
	RelTime bool   // swap the time column for relative time
	Color   string
	Output  string
}
