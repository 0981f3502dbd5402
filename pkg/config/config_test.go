package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccollicutt/pxlog/pkg/template"
)

// isolate points HOME at an empty directory and clears the environment
// overrides so tests do not pick up the developer's settings.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvColor, "")
	return home
}

func TestLoad_ValidYAML(t *testing.T) {
	isolate(t)
	content := `
format: '%(asctime)19s [%(level)-5s] %(msg)s'
color: never
output: text
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format != "%(asctime)19s [%(level)-5s] %(msg)s" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
	}
	if cfg.Template() == nil || !cfg.Template().Flags().AscTime {
		t.Error("Template() not compiled from format")
	}
}

func TestLoad_ValidTOML(t *testing.T) {
	isolate(t)
	content := `
format = "%(reltime)11s %(msg)s"
color = "auto"
output = "json"
`
	path := writeTempFile(t, "config.toml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format != "%(reltime)11s %(msg)s" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputJSON)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "config.yaml", "color: never\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != template.DefaultFormat {
		t.Errorf("Format = %q, want default", cfg.Format)
	}
	if cfg.Output != OutputText {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputText)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	isolate(t)
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != template.DefaultFormat {
		t.Errorf("Format = %q, want default", cfg.Format)
	}
	if cfg.Color != DefaultColor {
		t.Errorf("Color = %q, want %q", cfg.Color, DefaultColor)
	}
}

func TestLoad_NoPathReadsDefaultLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "pxlog")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("format: '%(msg)s'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "%(msg)s" {
		t.Errorf("Format = %q, want value from default location", cfg.Format)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	isolate(t)
	path := writeTempFile(t, "invalid.toml", `format = `)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid TOML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvFormat, "%(level)s %(msg)s")
	t.Setenv(EnvColor, "never")

	path := writeTempFile(t, "config.yaml", "format: '%(msg)s'\ncolor: always\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "%(level)s %(msg)s" {
		t.Errorf("Format = %q, want environment value", cfg.Format)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want environment value", cfg.Color)
	}
}

func TestValidate_MalformedFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "%(msg)d"

	err := Validate(cfg)
	if !errors.Is(err, template.ErrMalformed) {
		t.Errorf("Validate() error = %v, want ErrMalformed", err)
	}
}

func TestValidate_InvalidColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = "sometimes"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for invalid color mode")
	}
}

func TestValidate_InvalidOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "xml"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for invalid output kind")
	}
}

func TestValidate_EmptyFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = ""
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for empty format")
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{Format: "%(msg)s"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Color != DefaultColor || cfg.Output != DefaultOutput {
		t.Errorf("Validate() left Color=%q Output=%q", cfg.Color, cfg.Output)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  string
	}{
		{"none", Flags{}, template.DefaultFormat},
		{"explicit format", Flags{Format: "%(msg)s", AscTime: true}, "%(msg)s"},
		{"asctime", Flags{AscTime: true}, "%(asctime)19s %(lcode)s %(msg)-100s %(misc)s"},
		{"reltime", Flags{RelTime: true}, "%(reltime)11s %(lcode)s %(msg)-100s %(misc)s"},
		{"asctime wins over reltime", Flags{AscTime: true, RelTime: true}, "%(asctime)19s %(lcode)s %(msg)-100s %(misc)s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.ApplyFlags(tt.flags); err != nil {
				t.Fatalf("ApplyFlags() error = %v", err)
			}
			if cfg.Format != tt.want {
				t.Errorf("Format = %q, want %q", cfg.Format, tt.want)
			}
			if cfg.Template().String() != tt.want {
				t.Errorf("Template() = %q, want %q", cfg.Template().String(), tt.want)
			}
		})
	}
}

func TestApplyFlags_ColorAndOutput(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyFlags(Flags{Color: "never", Output: "json"}); err != nil {
		t.Fatalf("ApplyFlags() error = %v", err)
	}
	if cfg.Color != ColorNever || cfg.Output != OutputJSON {
		t.Errorf("Color=%q Output=%q", cfg.Color, cfg.Output)
	}

	if err := DefaultConfig().ApplyFlags(Flags{Color: "rainbow"}); err == nil {
		t.Error("ApplyFlags() expected error for invalid color")
	}
}

func TestApplyFlags_ShorthandOnEnvironmentFormat(t *testing.T) {
	isolate(t)
	t.Setenv(EnvFormat, "%(time)19s %(msg)s")

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFlags(Flags{RelTime: true}); err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "%(reltime)11s %(msg)s" {
		t.Errorf("Format = %q", cfg.Format)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format != template.DefaultFormat {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Color != ColorAlways || cfg.Output != OutputText {
		t.Errorf("Color=%q Output=%q", cfg.Color, cfg.Output)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_PX_FORMAT", "%(msg)s")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_PX_FORMAT}", "%(msg)s"},
		{"$TEST_PX_FORMAT", "%(msg)s"},
		{"plain-value", "plain-value"},
		{"$%(msg)s", "$%(msg)s"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
