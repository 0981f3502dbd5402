package render

import (
	"strings"

	"github.com/muesli/termenv"
)

// LevelStyle is the presentation of a severity level.
type LevelStyle struct {
	// Color is applied to the message when Colored is true.
	Color   termenv.Style
	Colored bool

	// Glyph is the one-cell status marker for the lcode column.
	Glyph string
}

// Palette builds styles for a terminal color profile. With termenv.Ascii no
// escape sequences are produced.
type Palette struct {
	profile termenv.Profile
}

// NewPalette returns a palette for the given profile.
func NewPalette(profile termenv.Profile) Palette {
	return Palette{profile: profile}
}

func (p Palette) style() termenv.Style {
	return p.profile.String()
}

// Level maps a severity to its style. Matching is case-insensitive.
func (p Palette) Level(level string) LevelStyle {
	lvl := strings.ToLower(level)
	switch lvl {
	case "":
		return LevelStyle{Glyph: " "}
	case "error", "fatal", "crit":
		s := p.style().Bold().Foreground(termenv.ANSIRed)
		return LevelStyle{Color: s, Colored: true, Glyph: s.Styled("X")}
	case "warning", "warn":
		s := p.style().Bold().Foreground(termenv.ANSIYellow)
		glyph := p.style().Bold().Foreground(termenv.ANSIBlack).Background(termenv.ANSIYellow)
		return LevelStyle{Color: s, Colored: true, Glyph: glyph.Styled("!")}
	case "info", "note":
		return LevelStyle{Glyph: p.style().Background(termenv.ANSIGreen).Styled(" ")}
	case "debug", "trace":
		s := p.style().Foreground(termenv.ANSIBrightBlack)
		return LevelStyle{Color: s, Colored: true, Glyph: " "}
	default:
		return LevelStyle{Glyph: lvl}
	}
}

// Systemd marks messages logged by systemd itself.
func (p Palette) Systemd(msg string) string {
	return p.style().Foreground(termenv.ANSIMagenta).Styled("[systemd] " + msg)
}

// ErrorValue highlights the value of an error= field.
func (p Palette) ErrorValue(v string) string {
	return p.style().Foreground(termenv.ANSIRed).Styled(v)
}
