package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparseable is returned when a value matches none of the known formats.
var ErrUnparseable = errors.New("unrecognized timestamp")

// AbsoluteLayout is the layout used for the asctime column.
const AbsoluteLayout = "2006-01-02 15:04:05"

// now supplies the year for year-less timestamps.
var now = time.Now

var formats = Formats()

// Parse converts a time field into a time.Time. Values without a zone are
// taken as UTC.
func Parse(s string) (time.Time, error) {
	t, _, err := Detect(s)
	return t, err
}

// Detect is Parse that also reports which format matched.
func Detect(s string) (time.Time, Format, error) {
	s = strings.TrimSpace(s)
	for _, f := range formats {
		t, err := time.Parse(f.Layout, s)
		if err != nil {
			continue
		}
		if f.NoYear {
			t = t.AddDate(now().Year(), 0, 0)
		}
		return t, f, nil
	}
	return time.Time{}, Format{}, fmt.Errorf("parsing %q: %w", s, ErrUnparseable)
}

// FormatAbsolute renders t as "YYYY-MM-DD HH:MM:SS" in its own zone.
func FormatAbsolute(t time.Time) string {
	return t.Format(AbsoluteLayout)
}

// FormatDuration renders d using the coarsest unit present, with fixed
// widths so columns stay aligned:
//
//	2_03:04:05   days
//	    3:04:05  hours
//	       4:05  minutes and seconds
//
// Sub-second precision is dropped. Negative durations get a leading "-".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d / time.Second)
	days, rem := secs/86400, secs%86400
	hours, rem := rem/3600, rem%3600
	mins, secs := rem/60, rem%60

	switch {
	case days > 0:
		return fmt.Sprintf("%s%d_%02d:%02d:%02d", sign, days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%s   %2d:%02d:%02d", sign, hours, mins, secs)
	default:
		return fmt.Sprintf("%s      %2d:%02d", sign, mins, secs)
	}
}
