// pxlog - Log Line Normalizer
//
// pxlog reads service logs from files or STDIN, extracts the timestamp,
// severity and key=value fields of each line, and prints them in a uniform,
// colorized layout.
package main

import (
	"os"

	"github.com/ccollicutt/pxlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
