package parser

import "regexp"

// Grammar shared by the extraction stages. Every pattern is anchored at the
// start of the text it is applied to.
var (
	// bareTimestamp matches a leading timestamp followed by whitespace:
	//   2024-01-15 10:30:00[,123]
	//   2024-01-15T10:30:00[.123][Z|+01:00]
	//   Jan 15 10:30:00
	bareTimestamp = regexp.MustCompile(
		`^(20\d{2}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:[,.]\d+)?` +
			`|20\d{2}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?` +
			`|[A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2})\s+`)

	// hostUnit matches a syslog "host unit[pid]: " tag.
	hostUnit = regexp.MustCompile(`^@*([a-z0-9.-]+) (\w+)\[\d+\]: `)

	// keyValue matches one key=value token at the scan position. A quoted
	// value runs to the first quote not escaped by a backslash.
	keyValue = regexp.MustCompile(`^(\w+)=("(?:[^"\\]|\\.)*"|\S+)\s*`)

	// severity matches a leading severity keyword with an optional colon.
	severity = regexp.MustCompile(`^\s*(DEBUG|TRACE|INFO|WARN|WARNING|ERROR|FATAL|CRIT):*\s+`)
)
