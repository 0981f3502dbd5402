package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\uFEFF"

// FileSource implements LineSource over a list of files.
type FileSource struct {
	files []string
	stdin io.Reader

	current        io.Closer
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a LineSource that reads the given files in order.
// A file named StdinName reads from os.Stdin.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
}

// NewReaderSource creates a LineSource reading a single stream, such as
// standard input.
func NewReaderSource(r io.Reader) *FileSource {
	return &FileSource{
		files:     []string{StdinName},
		stdin:     r,
		fileIndex: -1,
	}
}

// WithStdin sets the reader used for StdinName entries.
func (s *FileSource) WithStdin(r io.Reader) *FileSource {
	s.stdin = r
	return s
}

// Next returns the next line. An *OpenError is returned for a file that
// cannot be opened; the following call moves on to the next file.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			text := s.currentScanner.Text()
			if s.currentLine == 1 {
				text = strings.TrimPrefix(text, utf8BOM)
			}
			return &Line{
				Text:    strings.ToValidUTF8(text, "\uFFFD"),
				Source:  s.currentSource,
				LineNum: s.currentLine,
				First:   s.currentLine == 1,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			_ = s.closeCurrentFile()
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	var r io.Reader
	if path == StdinName {
		r = s.stdin
		s.current = nil
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return &OpenError{Path: path, Err: err}
		}
		r = f
		s.current = f
	}

	s.currentScanner = bufio.NewScanner(r)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	s.currentScanner = nil
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}
