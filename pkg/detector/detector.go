// Package detector samples log files and reports which fields the parser
// extracts from them, and which timestamp formats they use.
package detector

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/pxlog/pkg/fields"
	"github.com/ccollicutt/pxlog/pkg/parser"
	"github.com/ccollicutt/pxlog/pkg/source"
	"github.com/ccollicutt/pxlog/pkg/template"
	"github.com/ccollicutt/pxlog/pkg/timestamp"
)

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches      []FormatMatch // Timestamp formats seen, most frequent first
	Keys         []KeyCount    // key=value fields other than the standard ones
	SampledLines int           // Number of lines sampled
	ParsedLines  int           // Lines with a parseable time
	TaggedLines  int           // Lines with a "host unit[pid]:" tag
	LeveledLines int           // Lines with a severity
	BadTimes     int           // Lines whose time no format accepts
	BadTimeLine  string        // Example of such a line
}

// FormatMatch represents a timestamp format and how often it was seen.
type FormatMatch struct {
	Format     timestamp.Format
	Confidence float64   // 0.0 to 1.0 (share of sampled lines)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Parsed timestamp from sample
}

// KeyCount is the number of sampled lines carrying a field.
type KeyCount struct {
	Key   string
	Count int
}

// standard fields are reported through the line counters instead of Keys.
var standard = map[string]bool{
	fields.Orig:  true,
	fields.Time:  true,
	fields.Host:  true,
	fields.Unit:  true,
	fields.Level: true,
	fields.Msg:   true,
}

// Detector analyzes log lines with a parser pipeline.
type Detector struct {
	pipeline   *parser.Pipeline
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithPipeline sets the parser pipeline (default parser.DefaultPipeline).
func WithPipeline(p *parser.Pipeline) Option {
	return func(d *Detector) {
		if p != nil {
			d.pipeline = p
		}
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		pipeline:   parser.DefaultPipeline(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes the first lines of a log file. StdinName samples
// standard input.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sample(ctx, source.NewFileSource([]string{path}))
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines. Blank lines are ignored.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{}
	formats := make(map[string]*FormatMatch)
	var order []string
	keys := make(map[string]int)
	var keyOrder []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++
		tbl := d.pipeline.Parse(line)

		if tbl.Has(fields.Host) && tbl.Has(fields.Unit) {
			result.TaggedLines++
		}
		if tbl.Get(fields.Level) != "" {
			result.LeveledLines++
		}
		tbl.Each(func(k, _ string) {
			if standard[k] {
				return
			}
			if keys[k] == 0 {
				keyOrder = append(keyOrder, k)
			}
			keys[k]++
		})

		tv, ok := tbl.Lookup(fields.Time)
		if !ok || tv == "" {
			continue
		}
		parsed, f, err := timestamp.Detect(tv)
		if err != nil {
			result.BadTimes++
			if result.BadTimeLine == "" {
				result.BadTimeLine = line
			}
			continue
		}
		result.ParsedLines++
		m := formats[f.Name]
		if m == nil {
			m = &FormatMatch{Format: f, SampleLine: line, ParsedTime: parsed}
			formats[f.Name] = m
			order = append(order, f.Name)
		}
		m.MatchCount++
	}

	for _, name := range order {
		m := formats[name]
		m.Confidence = float64(m.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, *m)
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	for _, k := range keyOrder {
		result.Keys = append(result.Keys, KeyCount{Key: k, Count: keys[k]})
	}
	sort.SliceStable(result.Keys, func(i, j int) bool {
		return result.Keys[i].Count > result.Keys[j].Count
	})

	return result
}

// sample reads up to sampleSize non-blank lines.
func (d *Detector) sample(ctx context.Context, src source.LineSource) ([]string, error) {
	defer func() { _ = src.Close() }()

	var lines []string
	for len(lines) < d.sampleSize {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line.Text) != "" {
			lines = append(lines, line.Text)
		}
	}
	return lines, nil
}

// BestMatch returns the most frequent timestamp format, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// SuggestFormat proposes an output format for the sampled file. Files
// without times drop the time column; files mixing formats, or using
// year-less ones, get the normalized absolute time.
func (r *DetectionResult) SuggestFormat() string {
	switch {
	case !r.HasMatch():
		return strings.TrimPrefix(template.DefaultFormat, "%(time)19s ")
	case len(r.Matches) > 1 || r.Matches[0].Format.NoYear:
		return template.UseAscTime(template.DefaultFormat)
	default:
		return template.DefaultFormat
	}
}
