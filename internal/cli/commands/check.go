package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pxlog/pkg/config"
)

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	ConfigPath string
	Flags      config.Flags
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [config-file]",
		Short: "Validate a configuration file and output format",
		Long: `Validate a pxlog configuration and output format without reading logs.

Checks:
  - YAML or TOML syntax
  - Color mode and output kind
  - Format template syntax

The resolved format, the fields it references and the computed columns it
enables are printed. Environment overrides and the format flags apply as
they would when rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ConfigPath = args[0]
			} else if path, err := cmd.Flags().GetString("config"); err == nil {
				opts.ConfigPath = path
			}
			return RunCheck(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Flags.Format, "fmt", "F", "", "Output format template to check")
	cmd.Flags().BoolVarP(&opts.Flags.AscTime, "asctime", "A", false, "Check with the absolute time column")
	cmd.Flags().BoolVarP(&opts.Flags.RelTime, "reltime", "R", false, "Check with the relative time column")

	return cmd
}

// RunCheck loads and validates the configuration and reports the result.
func RunCheck(ctx context.Context, opts *CheckOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := cfg.ApplyFlags(opts.Flags); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tmpl := cfg.Template()
	flags := tmpl.Flags()

	_, _ = fmt.Fprintf(w, "Configuration valid!\n")
	_, _ = fmt.Fprintf(w, "  Format: %q\n", tmpl.String())
	_, _ = fmt.Fprintf(w, "  Color:  %s\n", cfg.Color)
	_, _ = fmt.Fprintf(w, "  Output: %s\n", cfg.Output)
	_, _ = fmt.Fprintf(w, "\nFields: %s\n", strings.Join(tmpl.Fields(), ", "))

	var computed []string
	if flags.AscTime {
		computed = append(computed, "asctime")
	}
	if flags.RelTime {
		computed = append(computed, "reltime")
	}
	if flags.Misc {
		computed = append(computed, "misc")
	}
	if len(computed) == 0 {
		computed = append(computed, "none")
	}
	_, _ = fmt.Fprintf(w, "Computed: %s\n", strings.Join(computed, ", "))

	return nil
}
