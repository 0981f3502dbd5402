// Package cli provides the command-line interface for pxlog.
package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/pxlog/internal/cli/commands"
	"github.com/ccollicutt/pxlog/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return Run(context.Background(), NewRootCommand())
}

// Run executes rootCmd and maps the result to an exit code.
func Run(ctx context.Context, rootCmd *cobra.Command) int {
	commands.ExitCode = 0
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.RenderOptions{}
	var (
		showVersion bool
		verbosity   int
		quiet       int
	)

	rootCmd := &cobra.Command{
		Use:   "pxlog [options] [<log1> [<log2>...]]",
		Short: "Normalize and colorize service log lines",
		Long: `pxlog reads log files (or STDIN) line by line, extracts the timestamp,
host, unit, severity and key=value fields, and prints each line in a uniform,
colorized layout.

The output layout is a format template with %(name)s placeholders, e.g.
  %(time)19s %(lcode)s %(msg)-100s %(misc)s

Fields:
  time, host, unit, level, msg  extracted from the line
  asctime                       absolute time (YYYY-MM-DD HH:MM:SS)
  reltime                       time since the first line of each file
  misc                          remaining key=value fields
  lcode                         severity glyph
  any other key                 value of that key=value field

The format is taken from --fmt, then $PX_LOG_FORMAT, then the config file.

Exit codes:
  0 - Success
  1 - One or more files could not be opened
  2 - Configuration error or unparseable timestamp`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())
			return setLogLevel(verbosity, quiet)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				commands.PrintVersion(cmd.OutOrStdout())
				return nil
			}
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			return commands.RunRender(cmd.Context(), opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.Flags.AscTime, "asctime", "A", false, "Show absolute time (shorthand for a format with %(asctime)19s)")
	flags.BoolVarP(&opts.Flags.RelTime, "reltime", "R", false, "Show time relative to the first line (shorthand for a format with %(reltime)11s)")
	flags.StringVarP(&opts.Flags.Format, "fmt", "F", "", "Output format template")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	flags.StringVar(&opts.Flags.Color, "color", "", "When to use colors (always|auto|never)")
	flags.StringVarP(&opts.Flags.Output, "output", "o", "", "Output kind (text|json)")

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Set verbosity level (use -v, -vv)")
	rootCmd.PersistentFlags().CountVarP(&quiet, "quiet", "q", "Set verbosity level (use -q, -qq, -qqq)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// setLogLevel maps the -v and -q counts to a logrus level.
func setLogLevel(verbosity, quiet int) error {
	if verbosity != 0 && quiet != 0 {
		return fmt.Errorf("cannot set both verbose and quiet at the same time")
	}

	logrus.SetLevel(logrus.InfoLevel)

	switch verbosity {
	case 0:
	case 1:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.TraceLevel)
	}

	switch quiet {
	case 0:
	case 1:
		logrus.SetLevel(logrus.WarnLevel)
	case 2:
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.FatalLevel)
	}

	return nil
}
