package discovery

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// PyProjectFile is the standard Python project manifest.
	PyProjectFile = "pyproject.toml"

	// PythonVersionFile is the pyenv/uv interpreter pin file.
	PythonVersionFile = ".python-version"
)

type pyProject struct {
	Project struct {
		Name           string `toml:"name"`
		Version        string `toml:"version"`
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

// ReadPyProject reads the [project] table of dir/pyproject.toml. A missing
// file returns an error satisfying errors.Is(err, os.ErrNotExist).
func ReadPyProject(dir string) (*Manifest, error) {
	path := filepath.Join(dir, PyProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc pyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	return &Manifest{
		Path:           path,
		Name:           doc.Project.Name,
		Version:        doc.Project.Version,
		RequiresPython: doc.Project.RequiresPython,
	}, nil
}

// ReadPythonVersion returns the first non-comment line of
// dir/.python-version.
func ReadPythonVersion(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, PythonVersionFile))
	if err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	return "", scanner.Err()
}

// SuggestPython picks an interpreter constraint for a new project:
// requires-python from pyproject.toml, then .python-version, then "".
func SuggestPython(dir string) string {
	if m, err := ReadPyProject(dir); err == nil && m.RequiresPython != "" {
		return m.RequiresPython
	}
	if v, err := ReadPythonVersion(dir); err == nil {
		return v
	}
	return ""
}
