package patch

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultPlaceholder is the marker line new-exercise tooling has always
// looked for in CMakeLists.txt.
const DefaultPlaceholder = "#-#-#PYTHON-NEW-EXERCISE-PLACEHOLDER-#-#-#"

var (
	// ErrPlaceholderNotFound is returned when no line contains the marker.
	ErrPlaceholderNotFound = errors.New("placeholder not found")
	// ErrEmptyPlaceholder is returned when the marker is the empty string,
	// which would match every line.
	ErrEmptyPlaceholder = errors.New("placeholder is empty")
)

// Result describes a completed file patch.
type Result struct {
	Path    string
	Markers int // number of marker lines, each of which received an entry
}

// Entry formats the line inserted above a marker: a tab, the quoted value,
// and eol.
func Entry(value, eol string) string {
	return "\t\"" + value + "\"" + eol
}

// Apply copies r to w line by line. Before every line that contains
// placeholder it writes Entry(value) and then the line itself, unchanged.
// It returns the number of marker lines seen.
func Apply(r io.Reader, w io.Writer, placeholder, value string) (int, error) {
	if placeholder == "" {
		return 0, ErrEmptyPlaceholder
	}

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	markers := 0

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if strings.Contains(line, placeholder) {
				markers++
				if _, werr := bw.WriteString(Entry(value, lineEnding(line))); werr != nil {
					return markers, fmt.Errorf("writing entry: %w", werr)
				}
			}
			if _, werr := bw.WriteString(line); werr != nil {
				return markers, fmt.Errorf("writing line: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return markers, fmt.Errorf("reading line: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return markers, fmt.Errorf("flushing output: %w", err)
	}
	return markers, nil
}

// lineEnding returns "\r\n" for CRLF lines and "\n" for everything else,
// including a final line with no terminator.
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// Patcher rewrites files in place.
type Patcher struct {
	Placeholder string
	Logger      *slog.Logger
}

// New returns a Patcher for placeholder. A nil logger discards.
func New(placeholder string, logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Patcher{Placeholder: placeholder, Logger: logger}
}

// File reads path fully into memory, inserts value above each marker line,
// and overwrites path in place. When no line holds the marker the file is
// left untouched and ErrPlaceholderNotFound is returned.
//
// The write truncates and rewrites the original file; there is no temp file
// or backup, so an interrupted write can leave it truncated.
func (p *Patcher) File(path, value string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var out bytes.Buffer
	markers, err := Apply(bytes.NewReader(content), &out, p.Placeholder, value)
	if err != nil {
		return nil, fmt.Errorf("patching %s: %w", path, err)
	}
	if markers == 0 {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrPlaceholderNotFound, p.Placeholder)
	}

	if err := os.WriteFile(path, out.Bytes(), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	p.Logger.Debug("patched build file", "path", path, "markers", markers, "entry", value)

	return &Result{Path: path, Markers: markers}, nil
}
