package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "1.0.1"

// PrintVersion writes the version line.
func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "pxlog version %s\n", Version)
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of pxlog.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion(cmd.OutOrStdout())
		},
	}
}
