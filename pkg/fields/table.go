// Package fields provides the per-line field table produced by the parser.
package fields

import (
	"bytes"
	"encoding/json"
)

// Reserved field names. Any other key is a caller-defined key=value field.
const (
	Orig    = "orig"
	Time    = "time"
	Host    = "host"
	Unit    = "unit"
	Level   = "level"
	Msg     = "msg"
	AscTime = "asctime"
	RelTime = "reltime"
	Misc    = "misc"
	LCode   = "lcode"
)

// Table is an insertion-ordered mapping from field name to value.
// Reading an unknown key yields the empty string.
type Table struct {
	keys   []string
	values map[string]string
}

// New creates a table holding the original line under "orig".
// The "orig" value cannot be changed afterwards.
func New(orig string) *Table {
	t := &Table{values: make(map[string]string)}
	t.keys = append(t.keys, Orig)
	t.values[Orig] = orig
	return t
}

// Get returns the value for key, or "" if the key was never set.
func (t *Table) Get(key string) string {
	return t.values[key]
}

// Lookup returns the value for key and whether it is present.
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its position.
// Setting "orig" is a no-op.
func (t *Table) Set(key, value string) {
	if key == Orig {
		return
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Append concatenates value onto the current value of key.
func (t *Table) Append(key, value string) {
	t.Set(key, t.values[key]+value)
}

// Keys returns the field names in discovery order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Each calls fn for every field in discovery order.
func (t *Table) Each(fn func(key, value string)) {
	for _, k := range t.keys {
		fn(k, t.values[k])
	}
}

// Len returns the number of fields.
func (t *Table) Len() int {
	return len(t.keys)
}

// MarshalJSON encodes the table as a JSON object, keeping field order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err := enc.Encode(t.values[k]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
