package parser

import (
	"strings"

	"github.com/ccollicutt/pxlog/pkg/fields"
)

// Pipeline runs extraction stages in order over one raw line.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline from the given stages.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// DefaultPipeline returns the standard order: left-strip, key=value scan,
// severity promotion.
func DefaultPipeline() *Pipeline {
	return NewPipeline(LeftStrip, KeyValues, Severity)
}

// Parse builds the field table for a single line. Stages that do not match
// leave their fields unset; parsing never fails.
func (p *Pipeline) Parse(line string) *fields.Table {
	line = strings.TrimRightFunc(line, isSpace)
	t := fields.New(line)
	rest := line
	for _, stage := range p.stages {
		rest = stage(t, rest)
	}
	return t
}

var defaultPipeline = DefaultPipeline()

// Parse runs the default pipeline over line.
func Parse(line string) *fields.Table {
	return defaultPipeline.Parse(line)
}
