package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Blue and yellow, light/dark adaptive.
var (
	pvxBluePrimary       = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#3b82f6"}
	pvxBlueBright        = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	pvxYellowAccent      = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#facc15"}
	pvxTextStrong        = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	pvxTextNormal        = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
	pvxTextMuted         = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	pvxTextFaint         = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	pvxError             = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	pvxBorderFocused     = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#3b82f6"}
	pvxButtonBg          = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#2563eb"}
	pvxButtonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	pvxButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}
	pvxButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

func pvxTheme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(pvxBorderFocused)
	f.Title = f.Title.Foreground(pvxBluePrimary).Bold(true)
	f.NoteTitle = f.NoteTitle.Foreground(pvxBluePrimary).Bold(true)
	f.Description = f.Description.Foreground(pvxTextMuted)
	f.ErrorIndicator = f.ErrorIndicator.Foreground(pvxError)
	f.ErrorMessage = f.ErrorMessage.Foreground(pvxError)
	f.SelectSelector = f.SelectSelector.Foreground(pvxYellowAccent)
	f.NextIndicator = f.NextIndicator.Foreground(pvxYellowAccent)
	f.PrevIndicator = f.PrevIndicator.Foreground(pvxYellowAccent)
	f.Option = f.Option.Foreground(pvxTextNormal)
	f.SelectedOption = f.SelectedOption.Foreground(pvxBlueBright)
	f.UnselectedOption = f.UnselectedOption.Foreground(pvxTextNormal)
	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(pvxYellowAccent)
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(pvxTextFaint)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(pvxYellowAccent)
	f.TextInput.Text = f.TextInput.Text.Foreground(pvxTextStrong)
	f.FocusedButton = f.FocusedButton.Foreground(pvxButtonText).Background(pvxButtonBg).Bold(true).Padding(0, 1)
	f.BlurredButton = f.BlurredButton.Foreground(pvxButtonTextBlurred).Background(pvxButtonBgBlurred).Padding(0, 1)
	f.Next = f.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(pvxTextMuted).Bold(false)
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Help = pvxHelpStyles()
	return t
}

func pvxHelpStyles() help.Styles {
	key := lipgloss.NewStyle().Foreground(pvxBlueBright)
	desc := lipgloss.NewStyle().Foreground(pvxTextMuted)
	sep := lipgloss.NewStyle().Foreground(pvxTextFaint)

	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}
