package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when --theme is not given.
const DefaultTheme = "pvx"

// themes maps --theme values to huh theme constructors.
var themes = map[string]func() *huh.Theme{
	DefaultTheme: pvxTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// selected is the --theme value for this run.
var selected = DefaultTheme

// ThemeNames lists the accepted --theme values, the default first.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultTheme}, names...)
}

// CheckTheme fails for names ThemeNames does not list.
func CheckTheme(name string) error {
	if _, ok := themes[name]; !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return nil
}

// SetTheme selects the prompt theme. Unknown or empty names select the
// default.
func SetTheme(name string) {
	if CheckTheme(name) != nil {
		name = DefaultTheme
	}
	selected = name
}

func activeTheme() *huh.Theme {
	return themes[selected]()
}
