// Package render turns parsed field tables into output lines.
package render

import (
	"context"
	"io"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// Formatter writes one parsed line to an output stream.
type Formatter interface {
	// Format renders the table as a single line to w.
	Format(ctx context.Context, tbl *fields.Table, w io.Writer) error

	// Reset is called before the first line of each input source.
	Reset()

	// Name returns the output kind (text, json).
	Name() string
}
