package timestamp

import (
	"time"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// Missing is rendered in place of a time column when a line has no time.
const Missing = "."

// Clock records the time of the first timestamped line of a source. It is
// the reference point for relative times and is reset per source.
type Clock struct {
	start time.Time
	set   bool
}

// NewClock returns an unset clock.
func NewClock() *Clock {
	return &Clock{}
}

// Reset unsets the clock.
func (c *Clock) Reset() {
	c.start = time.Time{}
	c.set = false
}

// IsSet reports whether a reference time has been recorded.
func (c *Clock) IsSet() bool {
	return c.set
}

// Start returns the reference time and whether it is set.
func (c *Clock) Start() (time.Time, bool) {
	return c.start, c.set
}

// Observe sets the clock from the line's time field if the clock is unset
// and the field is non-empty. Once set, later lines are ignored.
func (c *Clock) Observe(t *fields.Table) error {
	if c.set {
		return nil
	}
	raw := t.Get(fields.Time)
	if raw == "" {
		return nil
	}
	ts, err := Parse(raw)
	if err != nil {
		return err
	}
	c.start = ts
	c.set = true
	return nil
}

// Elapsed returns the formatted time between the clock and the line's time
// field, or Missing if the line has no time. An unset clock counts as zero
// elapsed.
func (c *Clock) Elapsed(t *fields.Table) (string, error) {
	raw := t.Get(fields.Time)
	if raw == "" {
		return Missing, nil
	}
	ts, err := Parse(raw)
	if err != nil {
		return "", err
	}
	if !c.set {
		return FormatDuration(0), nil
	}
	return FormatDuration(ts.Sub(c.start)), nil
}

// Absolute returns the line's time field rendered with AbsoluteLayout, or
// Missing if the line has no time.
func Absolute(t *fields.Table) (string, error) {
	raw := t.Get(fields.Time)
	if raw == "" {
		return Missing, nil
	}
	ts, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return FormatAbsolute(ts), nil
}
