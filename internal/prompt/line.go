package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Line prompts by writing to w and reading whole lines from r.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine returns a line driver over r and w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

// ExerciseName implements Prompter.
func (l *Line) ExerciseName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.w, nameMessage+" ")
	answer, ok, err := l.readLine()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoInput
	}
	return answer, nil
}

// AddShaders implements Prompter. End of input counts as an empty reply.
func (l *Line) AddShaders(ctx context.Context, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprint(l.w, shaderMessage(def)+" ")
	answer, _, err := l.readLine()
	if err != nil {
		return false, err
	}
	return interpretShaders(answer, def), nil
}

// readLine returns the next line without its terminator. ok is false when
// the input was already exhausted.
func (l *Line) readLine() (line string, ok bool, err error) {
	line, err = l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}
