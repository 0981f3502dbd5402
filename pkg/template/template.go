// Package template implements the output line format: literal text with
// named placeholders of the form %(name)[-][width][.precision]s.
package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// DefaultFormat renders the raw time, the level glyph, a 100-column message
// and the remaining fields.
const DefaultFormat = "%(time)19s %(lcode)s %(msg)-100s %(misc)s"

const (
	timeColumn    = "%(time)19s "
	ascTimeColumn = "%(asctime)19s "
	relTimeColumn = "%(reltime)11s "
)

// ErrMalformed is returned by Parse for an invalid format string.
var ErrMalformed = errors.New("malformed format")

// UseAscTime swaps the raw time column for an absolute time column.
func UseAscTime(format string) string {
	return strings.Replace(format, timeColumn, ascTimeColumn, 1)
}

// UseRelTime swaps the raw time column for a relative time column.
func UseRelTime(format string) string {
	return strings.Replace(format, timeColumn, relTimeColumn, 1)
}

// placeholder is one %(name)s directive.
type placeholder struct {
	name      string
	left      bool
	width     int
	precision int // -1 when absent
}

// segment is either literal text or a placeholder.
type segment struct {
	literal string
	field   *placeholder
}

// Template is a parsed format string. It is immutable and safe to reuse.
type Template struct {
	source   string
	segments []segment
	names    []string
}

// DisplayFlags tells the renderer which computed fields a template needs.
type DisplayFlags struct {
	AscTime bool
	RelTime bool
	Misc    bool
}

// Parse compiles a format string.
func Parse(format string) (*Template, error) {
	t := &Template{source: format}
	var lit strings.Builder
	seen := make(map[string]bool)

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}

		ph, n, err := parsePlaceholder(format[i:])
		if err != nil {
			return nil, fmt.Errorf("%w at offset %d: %v", ErrMalformed, i, err)
		}
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{field: ph})
		if !seen[ph.name] {
			seen[ph.name] = true
			t.names = append(t.names, ph.name)
		}
		i += n
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(format string) *Template {
	t, err := Parse(format)
	if err != nil {
		panic(err)
	}
	return t
}

// parsePlaceholder parses a directive at the start of s and returns it with
// the number of bytes consumed.
func parsePlaceholder(s string) (*placeholder, int, error) {
	i := 1
	if i >= len(s) || s[i] != '(' {
		return nil, 0, errors.New("expected '(' after '%'")
	}
	end := strings.IndexByte(s[i:], ')')
	if end < 0 {
		return nil, 0, errors.New("unterminated field name")
	}
	name := s[i+1 : i+end]
	if name == "" {
		return nil, 0, errors.New("empty field name")
	}
	i += end + 1

	ph := &placeholder{name: name, precision: -1}
	for i < len(s) && s[i] == '-' {
		ph.left = true
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i > start {
		ph.width, _ = strconv.Atoi(s[start:i])
	}
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		ph.precision, _ = strconv.Atoi(s[start:i])
	}
	if i >= len(s) {
		return nil, 0, fmt.Errorf("missing conversion for %q", name)
	}
	if s[i] != 's' {
		return nil, 0, fmt.Errorf("unsupported conversion %q for %q", s[i], name)
	}
	return ph, i + 1, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// String returns the source format.
func (t *Template) String() string {
	return t.source
}

// Fields returns the referenced field names in order of first use.
func (t *Template) Fields() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// References reports whether the template uses the named field.
func (t *Template) References(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}
	return false
}

// Flags derives the display flags from the referenced fields.
func (t *Template) Flags() DisplayFlags {
	return DisplayFlags{
		AscTime: t.References(fields.AscTime),
		RelTime: t.References(fields.RelTime),
		Misc:    t.References(fields.Misc),
	}
}

// Execute substitutes the table into the template. Missing fields render as
// the empty string. Widths count runes.
func (t *Template) Execute(tbl *fields.Table) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.field == nil {
			b.WriteString(seg.literal)
			continue
		}
		seg.field.write(&b, tbl.Get(seg.field.name))
	}
	return b.String()
}

func (p *placeholder) write(b *strings.Builder, v string) {
	if p.precision >= 0 && utf8.RuneCountInString(v) > p.precision {
		v = truncate(v, p.precision)
	}
	pad := p.width - utf8.RuneCountInString(v)
	if pad <= 0 {
		b.WriteString(v)
		return
	}
	if p.left {
		b.WriteString(v)
		b.WriteString(strings.Repeat(" ", pad))
		return
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(v)
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
