package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// JSONFormatter writes each parsed table as one JSON object per line.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Reset is a no-op; JSON output carries no relative times.
func (f *JSONFormatter) Reset() {}

// Format writes tbl as a JSON object followed by a newline.
func (f *JSONFormatter) Format(_ context.Context, tbl *fields.Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(tbl)
}
