// Package prompt asks the user for the inputs of a new exercise: its name
// and whether to add a shader pair. A survey-backed driver is used on
// terminals; a plain line reader serves pipes, scripts, and tests.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	// ErrNoInput is returned when input ends before an exercise name is read.
	ErrNoInput = errors.New("no exercise name given")
	// ErrAborted is returned when the user interrupts a terminal prompt.
	ErrAborted = errors.New("prompt aborted")
)

const (
	nameMessage = "Exercise name:"
	yesDefault  = "[Y/n]"
	noDefault   = "[y/N]"
)

// Prompter collects exercise inputs.
type Prompter interface {
	// ExerciseName returns the name exactly as typed, minus the line ending.
	ExerciseName(ctx context.Context) (string, error)
	// AddShaders asks whether to create the shader pair. def is the answer
	// for an empty reply.
	AddShaders(ctx context.Context, def bool) (bool, error)
}

// New returns a survey driver when in and out are both terminals and a line
// driver otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK && term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd())) {
		return NewSurvey(inFile, outFile)
	}
	return NewLine(in, out)
}

func shaderMessage(def bool) string {
	if def {
		return "Add shaders? " + yesDefault + ":"
	}
	return "Add shaders? " + noDefault + ":"
}

// interpretShaders maps a reply to a decision. With a yes default only "n"
// declines; with a no default only "y" accepts.
func interpretShaders(answer string, def bool) bool {
	if def {
		return answer != "n"
	}
	return answer == "y"
}
