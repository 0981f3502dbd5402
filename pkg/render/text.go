package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/ccollicutt/pxlog/pkg/fields"
	"github.com/ccollicutt/pxlog/pkg/template"
	"github.com/ccollicutt/pxlog/pkg/timestamp"
)

// miscSkip lists the fields never repeated in the misc column.
var miscSkip = map[string]bool{
	fields.Time:    true,
	fields.AscTime: true,
	fields.RelTime: true,
	fields.Host:    true,
	fields.Level:   true,
	fields.Unit:    true,
	fields.Msg:     true,
	fields.Orig:    true,
}

// TextFormatter renders tables through a format template.
type TextFormatter struct {
	tmpl    *template.Template
	flags   template.DisplayFlags
	palette Palette
	clock   *timestamp.Clock
}

// Option configures a TextFormatter.
type Option func(*TextFormatter)

// WithProfile sets the color profile (default termenv.ANSI).
func WithProfile(p termenv.Profile) Option {
	return func(f *TextFormatter) {
		f.palette = NewPalette(p)
	}
}

// WithClock sets the clock used for relative times.
func WithClock(c *timestamp.Clock) Option {
	return func(f *TextFormatter) {
		if c != nil {
			f.clock = c
		}
	}
}

// NewTextFormatter creates a formatter for the given template. Computed
// fields are only produced when the template references them.
func NewTextFormatter(tmpl *template.Template, opts ...Option) *TextFormatter {
	f := &TextFormatter{
		tmpl:    tmpl,
		flags:   tmpl.Flags(),
		palette: NewPalette(termenv.ANSI),
		clock:   timestamp.NewClock(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Reset restarts relative time for a new input source.
func (f *TextFormatter) Reset() {
	f.clock.Reset()
}

// Clock returns the formatter's session clock.
func (f *TextFormatter) Clock() *timestamp.Clock {
	return f.clock
}

// Format renders tbl and writes it followed by a newline.
func (f *TextFormatter) Format(_ context.Context, tbl *fields.Table, w io.Writer) error {
	line, err := f.Render(tbl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

// Render adds the computed fields to tbl and returns the formatted line.
// An error is returned only when a time field is present but unparseable
// and the template shows a derived time.
func (f *TextFormatter) Render(tbl *fields.Table) (string, error) {
	if err := f.timeFields(tbl); err != nil {
		return "", err
	}
	if f.flags.Misc {
		tbl.Set(fields.Misc, f.misc(tbl))
	}

	style := f.palette.Level(tbl.Get(fields.Level))
	tbl.Set(fields.LCode, style.Glyph)

	msg := strings.ReplaceAll(tbl.Get(fields.Msg), `\"`, `"`)
	if style.Colored {
		colored := style.Color.Styled(msg)
		if misc, ok := tbl.Lookup(fields.Misc); ok {
			// keep the columns after msg where they would be without escapes
			pad := len(colored) - len(msg)
			tbl.Set(fields.Misc, strings.Repeat(" ", pad)+misc)
		}
		msg = colored
	}
	tbl.Set(fields.Msg, msg)

	return f.tmpl.Execute(tbl), nil
}

func (f *TextFormatter) timeFields(tbl *fields.Table) error {
	if f.flags.AscTime {
		v, err := timestamp.Absolute(tbl)
		if err != nil {
			return fmt.Errorf("asctime: %w", err)
		}
		tbl.Set(fields.AscTime, v)
	}
	if f.flags.RelTime {
		if err := f.clock.Observe(tbl); err != nil {
			return fmt.Errorf("reltime: %w", err)
		}
		v, err := f.clock.Elapsed(tbl)
		if err != nil {
			return fmt.Errorf("reltime: %w", err)
		}
		tbl.Set(fields.RelTime, v)
	}
	return nil
}

// misc joins the non-reserved fields as key=value pairs in discovery order.
func (f *TextFormatter) misc(tbl *fields.Table) string {
	var parts []string
	for _, k := range tbl.Keys() {
		v := tbl.Get(k)
		if k == fields.Unit && v == "systemd" {
			tbl.Set(fields.Msg, f.palette.Systemd(tbl.Get(fields.Msg)))
		}
		if miscSkip[k] {
			continue
		}
		if k == "error" && v != "<nil>" {
			v = f.palette.ErrorValue(v)
		}
		if strings.Contains(v, " ") {
			v = `"` + v + `"`
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}
