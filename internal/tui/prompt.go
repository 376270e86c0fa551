package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// Choice is a selectable option.
type Choice struct {
	Label string
	Value string
}

// InitAnswers holds the values collected by PromptInit.
type InitAnswers struct {
	Python   string
	Template string
}

// runForm is a variable for testing.
var runForm = func(f *huh.Form) error { return f.Run() }

// PromptInit asks for the interpreter constraint and project template.
// answers carries the defaults in and the choices out.
func PromptInit(answers *InitAnswers, templates []Choice) error {
	options := make([]huh.Option[string], 0, len(templates))
	for _, c := range templates {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Python version").
				Description("Constraint passed to uv (e.g. 3.12 or >=3.11). Leave empty for any.").
				Placeholder("any").
				Value(&answers.Python),
			huh.NewSelect[string]().
				Title("Template").
				Options(options...).
				Value(&answers.Template),
		),
	).WithTheme(activeTheme())

	if err := runForm(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
