// Package requirements edits the dependency declaration file: one
// requirement specifier per line, consumed verbatim by the resolver.
//
// Package names are compared after PEP 503 normalization (lowercase, runs of
// "-", "_" and "." collapsed to "-"), so "Flask_Login" and "flask-login"
// name the same project.
package requirements

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/indaco/pvx/internal/core"
)

var (
	separatorRun = regexp.MustCompile(`[-_.]+`)
	leadingName  = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)
	argPattern   = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)(\[[A-Za-z0-9._,\s-]*\])?$`)
)

// versionOperators are PEP 440 comparison operators, longest first.
var versionOperators = []string{"===", "==", "~=", "!=", ">=", "<=", ">", "<"}

// NormalizeName applies PEP 503 normalization to a project name.
func NormalizeName(name string) string {
	return strings.ToLower(separatorRun.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// Name returns the normalized project name a requirement line declares, or
// "" for blank lines, comments and pip options such as "-r" or "--index-url".
func Name(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
		return ""
	}
	m := leadingName.FindStringSubmatch(trimmed)
	if m == nil {
		return ""
	}
	return NormalizeName(m[1])
}

// FromArg turns a command-line package argument into a requirement line.
//
//	requests            -> requests
//	Flask_Login@0.6     -> flask-login==0.6
//	httpx[http2]@>=0.27 -> httpx[http2]>=0.27
//	pkg@https://host/x  -> pkg @ https://host/x
func FromArg(arg string) (string, error) {
	name, spec, hasSpec := strings.Cut(strings.TrimSpace(arg), "@")
	name = strings.TrimSpace(name)
	spec = strings.TrimSpace(spec)

	m := argPattern.FindStringSubmatch(name)
	if m == nil {
		return "", fmt.Errorf("invalid package name %q", name)
	}
	base := NormalizeName(m[1]) + strings.ReplaceAll(m[2], " ", "")

	if !hasSpec {
		return base, nil
	}
	if spec == "" {
		return "", fmt.Errorf("missing version after %q", name+"@")
	}
	if strings.Contains(spec, "://") {
		return base + " @ " + spec, nil
	}
	for _, op := range versionOperators {
		if strings.HasPrefix(spec, op) {
			return base + spec, nil
		}
	}
	return base + "==" + spec, nil
}

// PinMode selects how a fetched latest version is written.
type PinMode int

const (
	// PinNone leaves the requirement unpinned.
	PinNone PinMode = iota
	// PinExact writes name==version.
	PinExact
	// PinCompatible writes name~=major.minor.
	PinCompatible
)

// Pin appends a version constraint for version to a bare requirement.
func Pin(requirement, version string, mode PinMode) string {
	switch mode {
	case PinExact:
		return requirement + "==" + version
	case PinCompatible:
		return requirement + "~=" + compatibleRelease(version)
	default:
		return requirement
	}
}

// compatibleRelease keeps the first two release segments ("2.32.3" -> "2.32",
// "2.0rc1" -> "2.0"). A single segment gets ".0" appended since "~=" needs two.
func compatibleRelease(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return leadingDigits(version) + ".0"
	}
	return parts[0] + "." + leadingDigits(parts[1])
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return "0"
	}
	return s[:i]
}

// File is an in-memory copy of a requirements file.
type File struct {
	path  string
	lines []string
}

// Load reads path. A missing file loads as empty.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return &File{path: path, lines: lines}, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Lines returns a copy of the current lines.
func (f *File) Lines() []string { return slices.Clone(f.lines) }

// Contains reports whether an identical line (ignoring surrounding
// whitespace) is present.
func (f *File) Contains(line string) bool {
	want := strings.TrimSpace(line)
	return slices.ContainsFunc(f.lines, func(l string) bool {
		return strings.TrimSpace(l) == want
	})
}

// Append adds line unless an identical line exists. It reports whether the
// file changed.
func (f *File) Append(line string) bool {
	if f.Contains(line) {
		return false
	}
	f.lines = append(f.lines, strings.TrimSpace(line))
	return true
}

// Remove drops the lines equal to the requirement arg normalizes to, as
// written by Append. When no line matches exactly, every line declaring the
// same project name is dropped instead. It returns how many were removed.
func (f *File) Remove(arg string) int {
	before := len(f.lines)
	if exact, err := FromArg(arg); err == nil {
		f.lines = slices.DeleteFunc(f.lines, func(l string) bool {
			return strings.TrimSpace(l) == exact
		})
		if n := before - len(f.lines); n > 0 {
			return n
		}
	}

	target := Name(arg)
	if target == "" {
		return 0
	}
	f.lines = slices.DeleteFunc(f.lines, func(l string) bool {
		return Name(l) == target
	})
	return before - len(f.lines)
}

// Save writes the lines back, newline-terminated.
func (f *File) Save() error {
	var buf bytes.Buffer
	for _, l := range f.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(f.path, buf.Bytes(), core.PermFile); err != nil {
		return fmt.Errorf("failed to write %q: %w", f.path, err)
	}
	return nil
}

// IsEmpty reports whether the file at path declares no requirements: it holds
// only whitespace and comments. A missing file is an error.
func IsEmpty(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	for line := range strings.SplitSeq(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return false, nil
		}
	}
	return true, nil
}

// Count returns the number of requirement lines (not comments or options).
func (f *File) Count() int {
	n := 0
	for _, l := range f.lines {
		if Name(l) != "" {
			n++
		}
	}
	return n
}
