package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pxlog/pkg/config"
	"github.com/ccollicutt/pxlog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Report the fields and timestamp format found in a log file",
		Long: `Sample a log file and report what pxlog extracts from it.

Reports the share of lines with a timestamp, a host/unit tag and a severity,
the timestamp formats seen, the extra key=value fields, and a suggested
output format.

Optionally generates a starter config file with --write-config.

Example:
  pxlog detect /var/log/portworx.log
  pxlog detect --sample 500 /var/log/large.log
  pxlog detect -w ~/.config/pxlog/config.yaml /var/log/syslog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunDetect(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected timestamp formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

// RunDetect samples logFile and writes the report to w.
func RunDetect(ctx context.Context, logFile string, opts *DetectOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Wrote starter config to: %s\n\n", opts.WriteConfig)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(w, result, logFile, opts)
	default:
		outputDetectText(w, result, logFile, opts)
		return nil
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) {
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	p("=== Log Format Detection ===\n\n")
	p("File: %s\n", logFile)
	p("Lines sampled: %d\n", result.SampledLines)
	p("  with timestamp:      %d (%.1f%%)\n", result.ParsedLines, percent(result.ParsedLines, result.SampledLines))
	p("  with host/unit tag:  %d (%.1f%%)\n", result.TaggedLines, percent(result.TaggedLines, result.SampledLines))
	p("  with severity:       %d (%.1f%%)\n", result.LeveledLines, percent(result.LeveledLines, result.SampledLines))
	p("\n")

	if result.BadTimes > 0 {
		p("WARNING: %d line(s) have a time value pxlog cannot parse.\n", result.BadTimes)
		p("Rendering them with asctime or reltime will fail, e.g.:\n  %s\n\n", result.BadTimeLine)
	}

	if best := result.BestMatch(); best != nil {
		p("Timestamp Format: %s\n", best.Format.Name)
		p("Confidence: %.1f%% (%d/%d lines matched)\n",
			best.Confidence*100, best.MatchCount, result.SampledLines)
		p("Sample match:\n  %s\n", best.SampleLine)
		p("Parsed as: %s\n\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))

		if opts.ShowAll && len(result.Matches) > 1 {
			p("--- Other timestamp formats ---\n")
			for i, m := range result.Matches[1:] {
				p("%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			}
			p("\n")
		}
	} else {
		p("No timestamp format detected.\n\n")
	}

	if len(result.Keys) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Field", "Lines", "Share"})
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, k := range result.Keys {
			table.Append([]string{
				k.Key,
				strconv.Itoa(k.Count),
				fmt.Sprintf("%.1f%%", percent(k.Count, result.SampledLines)),
			})
		}
		table.Render()
		p("\n")
	}

	p("Suggested format:\n  --fmt '%s'\n", result.SuggestFormat())
}

// JSONMatch represents a timestamp format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
}

// JSONField is a key=value field count in JSON output.
type JSONField struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File            string      `json:"file"`
	SampledLines    int         `json:"sampled_lines"`
	ParsedLines     int         `json:"parsed_lines"`
	TaggedLines     int         `json:"tagged_lines"`
	LeveledLines    int         `json:"leveled_lines"`
	BadTimes        int         `json:"bad_times,omitempty"`
	Matches         []JSONMatch `json:"matches"`
	Fields          []JSONField `json:"fields"`
	SuggestedFormat string      `json:"suggested_format"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	output := JSONOutput{
		File:            logFile,
		SampledLines:    result.SampledLines,
		ParsedLines:     result.ParsedLines,
		TaggedLines:     result.TaggedLines,
		LeveledLines:    result.LeveledLines,
		BadTimes:        result.BadTimes,
		Matches:         make([]JSONMatch, 0),
		Fields:          make([]JSONField, 0, len(result.Keys)),
		SuggestedFormat: result.SuggestFormat(),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}
	for _, m := range matches {
		output.Matches = append(output.Matches, JSONMatch{
			Name:       m.Format.Name,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}
	for _, k := range result.Keys {
		output.Fields = append(output.Fields, JSONField{Key: k.Key, Count: k.Count})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}

// writeStarterConfig writes a config file using the suggested format.
func writeStarterConfig(result *detector.DetectionResult, logFile, configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.Format = result.SuggestFormat()
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("suggested config is invalid: %w", err)
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	header := fmt.Sprintf("# pxlog configuration\n# Generated by: pxlog detect %s\n\n", logFile)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, append([]byte(header), body...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
