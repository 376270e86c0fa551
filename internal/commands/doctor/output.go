package doctor

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pvx/internal/printer"
	"github.com/tidwall/sjson"
)

// Formatter renders a Report.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// Format renders the report.
func (f *Formatter) Format(r *Report) (string, error) {
	switch f.format {
	case FormatJSON:
		return formatJSON(r)
	case FormatYAML:
		return formatYAML(r)
	default:
		return formatText(r), nil
	}
}

func formatText(r *Report) string {
	var sb strings.Builder
	sb.WriteString(printer.Info("pvx doctor"))
	if r.Version != "" {
		sb.WriteString(printer.Faint(" " + r.Version))
	}
	sb.WriteString("\n")
	sb.WriteString(printer.Faint(strings.Repeat("-", 50)))
	sb.WriteString("\n")

	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "%s %s\n", statusIcon(c.Status), printer.KeyValue(c.Name, c.Value))
	}
	return sb.String()
}

func statusIcon(s Status) string {
	switch s {
	case StatusOK:
		return printer.Success("✓")
	case StatusWarn:
		return printer.Warning("!")
	default:
		return printer.Error("✗")
	}
}

// formatJSON builds an object keyed by check name, preserving order.
func formatJSON(r *Report) (string, error) {
	doc := "{}"
	var err error
	if r.Version != "" {
		if doc, err = sjson.Set(doc, "version", r.Version); err != nil {
			return "", err
		}
	}
	for _, c := range r.Checks {
		key := "checks." + escapeKey(c.Name)
		if doc, err = sjson.Set(doc, key+".value", c.Value); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, key+".status", string(c.Status)); err != nil {
			return "", err
		}
	}
	return doc + "\n", nil
}

// escapeKey escapes sjson path metacharacters.
func escapeKey(k string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(k)
}

func formatYAML(r *Report) (string, error) {
	checks := make(yaml.MapSlice, 0, len(r.Checks))
	for _, c := range r.Checks {
		checks = append(checks, yaml.MapItem{
			Key: c.Name,
			Value: yaml.MapSlice{
				{Key: "value", Value: c.Value},
				{Key: "status", Value: string(c.Status)},
			},
		})
	}

	doc := yaml.MapSlice{}
	if r.Version != "" {
		doc = append(doc, yaml.MapItem{Key: "version", Value: r.Version})
	}
	doc = append(doc, yaml.MapItem{Key: "checks", Value: checks})

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render yaml: %w", err)
	}
	return string(out), nil
}
