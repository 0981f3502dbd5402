// Package timestamp parses the time values found in log lines and tracks the
// reference time used for relative timestamps.
package timestamp

// Format is a timestamp layout accepted for "time" fields.
type Format struct {
	Name     string   // Human-readable name
	Layout   string   // Go time layout for parsing
	NoYear   bool     // Layout carries no year; the current year is assumed
	Examples []string // Example timestamps
}

// Formats returns the layouts tried by Parse, most specific first.
// Fractional seconds after the seconds field are accepted by every layout,
// with either a period or a comma.
func Formats() []Format {
	return []Format{
		{
			Name:     "RFC 3339",
			Layout:   "2006-01-02T15:04:05.999999999Z07:00",
			Examples: []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00.123+02:00"},
		},
		{
			Name:     "ISO 8601 compact offset",
			Layout:   "2006-01-02T15:04:05.999999999-0700",
			Examples: []string{"2024-01-15T10:30:00+0200"},
		},
		{
			Name:     "ISO 8601 local",
			Layout:   "2006-01-02T15:04:05",
			Examples: []string{"2024-01-15T10:30:00", "2024-01-15T10:30:00.123"},
		},
		{
			Name:     "Datetime with offset",
			Layout:   "2006-01-02 15:04:05Z07:00",
			Examples: []string{"2024-01-15 10:30:00Z", "2024-01-15 10:30:00+02:00"},
		},
		{
			Name:     "Datetime (space-separated)",
			Layout:   "2006-01-02 15:04:05",
			Examples: []string{"2024-01-15 10:30:00", "2024-01-15 10:30:00,123"},
		},
		{
			Name:     "Syslog with year",
			Layout:   "Jan _2 2006 15:04:05",
			Examples: []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:     "Syslog (BSD)",
			Layout:   "Jan _2 15:04:05",
			NoYear:   true,
			Examples: []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
		},
	}
}
