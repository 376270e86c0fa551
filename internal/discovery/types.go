package discovery

import (
	"path/filepath"
	"strings"
)

// MarkerFile is the file whose presence makes a directory a project root.
const MarkerFile = "pvx.yaml"

// Root is the directory a pvx invocation operates on.
type Root struct {
	// Dir is the absolute project directory.
	Dir string

	// Found is true when Dir actually contains MarkerFile.
	Found bool
}

// ConfigPath returns the path of the marker file inside the root.
func (r Root) ConfigPath() string {
	return filepath.Join(r.Dir, MarkerFile)
}

// Join resolves a project-relative path. Absolute paths are returned as-is.
func (r Root) Join(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Dir, path)
}

// Rel returns path relative to the root, or path unchanged when it is
// outside the root.
func (r Root) Rel(path string) string {
	rel, err := filepath.Rel(r.Dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Manifest is what pvx reads from a project's pyproject.toml.
type Manifest struct {
	Path           string
	Name           string
	Version        string
	RequiresPython string
}
