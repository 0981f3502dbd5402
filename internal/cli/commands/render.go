package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/pxlog/pkg/config"
	"github.com/ccollicutt/pxlog/pkg/parser"
	"github.com/ccollicutt/pxlog/pkg/render"
	"github.com/ccollicutt/pxlog/pkg/source"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReadyNotice is written to stderr before reading an interactive stdin.
const ReadyNotice = "pxlog: READY to read from STDIN  (CTRL-C to abort)"

// ErrConfig marks configuration failures.
var ErrConfig = errors.New("configuration error")

// RenderOptions holds command-line options for rendering log files.
type RenderOptions struct {
	ConfigPath string
	Flags      config.Flags

	// Streams default to the process's standard streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *RenderOptions) streams() (io.Reader, io.Writer, io.Writer) {
	in, out, errw := o.Stdin, o.Stdout, o.Stderr
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errw == nil {
		errw = os.Stderr
	}
	return in, out, errw
}

// RunRender normalizes the named log files, or stdin when args is empty,
// and writes one rendered line per input line. Files that cannot be opened
// are reported and skipped with ExitCode set to 1. Configuration errors and
// unparseable timestamps stop processing and are returned.
func RunRender(ctx context.Context, opts *RenderOptions, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ExitCode = 0
	stdin, stdout, stderr := opts.streams()

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.ApplyFlags(opts.Flags); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	logrus.WithFields(logrus.Fields{
		"format": cfg.Format,
		"color":  cfg.Color,
		"output": cfg.Output,
	}).Debug("configuration loaded")

	formatter := newFormatter(cfg, stdout)

	var src source.LineSource
	if len(args) == 0 {
		if isTerminal(stdin) {
			_, _ = fmt.Fprintln(stderr, ReadyNotice)
		}
		src = source.NewReaderSource(stdin)
	} else {
		files, err := source.ExpandGlobs(args)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		logrus.Debugf("reading %d source(s)", len(files))
		src = source.NewFileSource(files).WithStdin(stdin)
	}
	defer func() { _ = src.Close() }()

	w := bufio.NewWriter(stdout)
	defer func() { _ = w.Flush() }()

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		var openErr *source.OpenError
		if errors.As(err, &openErr) {
			logrus.WithField("file", openErr.Path).Error(openErr.Err)
			ExitCode = 1
			continue
		}
		if err != nil {
			return err
		}

		if line.First {
			logrus.WithField("file", line.Source).Trace("starting source")
			formatter.Reset()
		}

		tbl := parser.Parse(line.Text)
		if err := formatter.Format(ctx, tbl, w); err != nil {
			return fmt.Errorf("%s:%d: %w", line.Source, line.LineNum, err)
		}
		if isTerminalWriter(stdout) {
			// keep interactive output line-by-line
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}

// newFormatter picks the output formatter for cfg.
func newFormatter(cfg *config.Config, stdout io.Writer) render.Formatter {
	if cfg.Output == config.OutputJSON {
		return render.NewJSONFormatter()
	}
	return render.NewTextFormatter(cfg.Template(), render.WithProfile(colorProfile(cfg.Color, stdout)))
}

// colorProfile maps a color mode to a termenv profile.
func colorProfile(mode config.ColorMode, stdout io.Writer) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAuto:
		if isTerminalWriter(stdout) {
			return termenv.ANSI
		}
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminalFd(f.Fd())
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFd(f.Fd())
}

func isTerminalFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
