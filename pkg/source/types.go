// Package source reads raw log lines from standard input or files, one
// source at a time and in the order given.
package source

import (
	"context"
	"fmt"
)

// StdinName is the source name used for standard input. Passing it as a
// file name reads standard input.
const StdinName = "-"

// Line is a single raw input line.
type Line struct {
	// Text is the line content without the line terminator.
	Text string

	// Source is the file path this line came from, or StdinName.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int

	// First is set on the first line of each source.
	First bool
}

// LineSource provides an iterator over raw lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line. Returns io.EOF when no more lines are
	// available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// OpenError reports a source that could not be opened. Reading can resume
// with the next source by calling Next again.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
