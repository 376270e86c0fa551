package doctor

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusOK          Status = "ok"
	StatusWarn        Status = "warn"
	StatusMissing     Status = "missing"
	StatusUnavailable Status = "unavailable"
)

// Check is one line of the report.
type Check struct {
	Name   string
	Value  string
	Status Status
}

// Report is the full doctor output, in display order.
type Report struct {
	Version string
	Checks  []Check
}

// OutputFormat controls how the report is displayed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

var validFormats = []OutputFormat{FormatText, FormatJSON, FormatYAML}

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(s))
	if !slices.Contains(validFormats, f) {
		return "", fmt.Errorf("invalid format %q (use text, json or yaml)", s)
	}
	return f, nil
}
