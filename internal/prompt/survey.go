package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Survey prompts on a terminal through survey.
type Survey struct {
	in  *os.File
	out *os.File
}

// NewSurvey returns a survey driver bound to the given terminal files.
func NewSurvey(in, out *os.File) *Survey {
	return &Survey{in: in, out: out}
}

// ExerciseName implements Prompter.
func (s *Survey) ExerciseName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: nameMessage,
		Help:    "Used as the directory name under the source root and as the base name of every file.",
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required), s.stdio()); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// AddShaders implements Prompter. The reply is free text so that the same
// answers work on a terminal and through a pipe.
func (s *Survey) AddShaders(ctx context.Context, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out string
	prompt := &survey.Input{
		Message: shaderMessage(def),
		Help:    "Creates an empty vertex and fragment shader next to the source file.",
	}
	if err := survey.AskOne(prompt, &out, s.stdio()); err != nil {
		return false, translateSurveyErr(err)
	}
	return interpretShaders(out, def), nil
}

func (s *Survey) stdio() survey.AskOpt {
	return survey.WithStdio(s.in, s.out, os.Stderr)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
