package config

import (
	"fmt"
	"slices"
	"strings"
)

// Script is a named command written into a new pvx.yaml.
type Script struct {
	Name    string
	Command string
}

// Template is a starting point for `pvx init`.
type Template struct {
	Name        string
	Description string
	Entrypoint  string
	Scripts     []Script
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "basic",
			Description: "Interpreter and dependency settings only",
		},
		{
			Name:        "app",
			Description: "Application with an entrypoint and a test script",
			Entrypoint:  "python main.py",
			Scripts: []Script{
				{Name: "test", Command: "python -m pytest"},
			},
		},
		{
			Name:        "lib",
			Description: "Library with test and lint scripts",
			Scripts: []Script{
				{Name: "test", Command: "python -m pytest"},
				{Name: "lint", Command: "ruff check ."},
				{Name: "fmt", Command: "ruff format ."},
			},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
