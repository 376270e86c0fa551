package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/indaco/pvx/internal/core"
)

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// InitOptions holds the values rendered into a new pvx.yaml.
type InitOptions struct {
	Python   string
	Template Template
}

// Writer renders new config files with injected file operations.
type Writer struct {
	fileOpener FileOpener
	fileWriter FileWriter
}

// NewWriter creates a Writer. Nil dependencies fall back to the os package.
func NewWriter(opener FileOpener, writer FileWriter) *Writer {
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &Writer{fileOpener: opener, fileWriter: writer}
}

// WriteDefault renders opts into path. It refuses to overwrite an existing
// file.
func (w *Writer) WriteDefault(path string, opts InitOptions) error {
	data, err := Render(opts)
	if err != nil {
		return err
	}

	file, err := w.fileOpener.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, core.PermFile)
	if err != nil {
		return fmt.Errorf("failed to create config file %q: %w", path, err)
	}
	defer file.Close()

	if _, err := w.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

// defaultWriter backs the package-level WriteDefault.
var defaultWriter = NewWriter(nil, nil)

// WriteDefault renders opts into path using the os-backed Writer.
func WriteDefault(path string, opts InitOptions) error {
	return defaultWriter.WriteDefault(path, opts)
}

var configTemplate = template.Must(template.New("pvx.yaml").Funcs(template.FuncMap{
	"quote": quoteValue,
}).Parse(`# pvx project configuration
{{- if .Python}}
python: {{quote .Python}}
{{- else}}
# python: ">=3.11"
{{- end}}
venv: {{.Venv}}
requirements: {{.Requirements}}
lock: {{.Lock}}
{{- if .Template.Entrypoint}}
entrypoint: {{quote .Template.Entrypoint}}
{{- else}}
# entrypoint: python main.py
{{- end}}
scripts:
{{- range .Template.Scripts}}
  {{.Name}}: {{quote .Command}}
{{- else}}
  # test: python -m pytest
{{- end}}
`))

// Render returns the pvx.yaml text for opts.
func Render(opts InitOptions) ([]byte, error) {
	var sb strings.Builder
	data := struct {
		InitOptions
		Venv         string
		Requirements string
		Lock         string
	}{opts, DefaultVenv, DefaultRequirements, DefaultLock}

	if err := configTemplate.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return []byte(sb.String()), nil
}

// quoteValue double-quotes values that would not survive as plain scalars.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, "#:\"'") || strings.TrimSpace(v) != v ||
		strings.ContainsAny(v[:1], "<>=!~*&[{|") {
		return strconv.Quote(v)
	}
	return v
}
