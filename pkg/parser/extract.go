package parser

import (
	"strings"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// Stage is one step of the extraction pipeline. It records what it finds in
// the table and returns the text left for the next stage.
type Stage func(t *fields.Table, rest string) string

// LeftStrip removes a leading timestamp and "host unit[pid]:" tag. The
// timestamp is tried both before and after the tag since sources disagree
// on its placement.
func LeftStrip(t *fields.Table, rest string) string {
	rest = strings.TrimRightFunc(rest, isSpace)
	rest = stripTimestamp(t, rest)
	if m := hostUnit.FindStringSubmatchIndex(rest); m != nil {
		t.Set(fields.Host, rest[m[2]:m[3]])
		t.Set(fields.Unit, rest[m[4]:m[5]])
		rest = rest[m[1]:]
	}
	rest = stripTimestamp(t, rest)
	return strings.TrimRightFunc(rest, isSpace)
}

func stripTimestamp(t *fields.Table, rest string) string {
	m := bareTimestamp.FindStringSubmatchIndex(rest)
	if m == nil {
		return rest
	}
	t.Set(fields.Time, rest[m[2]:m[3]])
	return rest[m[1]:]
}

// KeyValues consumes consecutive key=value tokens. Scanning stops at the
// first token that does not fit the grammar; anything left is appended to
// the message. The returned remainder is always empty.
func KeyValues(t *fields.Table, rest string) string {
	idx := 0
	for idx < len(rest) {
		m := keyValue.FindStringSubmatchIndex(rest[idx:])
		if m == nil {
			break
		}
		key := rest[idx+m[2] : idx+m[3]]
		t.Set(key, cleanValue(rest[idx+m[4]:idx+m[5]]))
		idx += m[1]
	}
	if idx < len(rest) {
		t.Append(fields.Msg, rest[idx:])
	}
	return ""
}

// cleanValue drops one pair of surrounding quotes and surrounding blanks.
func cleanValue(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	return strings.Trim(v, " \t")
}

// Severity moves a leading severity keyword from the message into the level
// field, replacing any level set by a key=value token.
func Severity(t *fields.Table, rest string) string {
	msg := t.Get(fields.Msg)
	m := severity.FindStringSubmatchIndex(msg)
	if m == nil {
		return rest
	}
	t.Set(fields.Level, msg[m[2]:m[3]])
	t.Set(fields.Msg, msg[m[1]:])
	return rest
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
