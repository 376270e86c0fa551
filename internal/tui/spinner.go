package tui

import (
	"github.com/charmbracelet/huh/spinner"
)

// runSpinner is a variable for testing.
var runSpinner = func(title string, action func()) error {
	return spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Action(action).
		Run()
}

// WithSpinner runs action behind a spinner when the terminal is interactive
// and directly otherwise. It returns the action's error.
func WithSpinner(title string, action func() error) error {
	if !IsInteractive() {
		return action()
	}

	var actionErr error
	if err := runSpinner(title, func() { actionErr = action() }); err != nil {
		return err
	}
	return actionErr
}
