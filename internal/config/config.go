// Package config reads the per-project pvx.yaml.
//
// The file is a restricted two-level key/value format: top-level scalars plus
// one nested "scripts" mapping. It is read fresh on every invocation and never
// written back through this model; edits happen by rendering a template
// (init) or by the user.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/indaco/pvx/internal/discovery"
)

// Top-level keys understood by pvx.
const (
	KeyPython       = "python"
	KeyVenv         = "venv"
	KeyRequirements = "requirements"
	KeyLock         = "lock"
	KeyEntrypoint   = "entrypoint"
	KeyScripts      = "scripts"
)

// Defaults applied when a key is absent or empty.
const (
	DefaultVenv         = ".venv"
	DefaultRequirements = "requirements.txt"
	DefaultLock         = "requirements.lock"
)

// Config is the parsed content of pvx.yaml.
type Config struct {
	values  map[string]string
	scripts map[string]string
}

// readFileFn is swapped in tests.
var readFileFn = os.ReadFile

// Load reads pvx.yaml from the given project root. A missing file yields an
// empty Config so every default applies.
func Load(root string) (*Config, error) {
	return LoadFile(filepath.Join(root, discovery.MarkerFile))
}

// LoadFile reads and parses the config at path. A missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	data, err := readFileFn(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data), nil
}

// Empty returns a Config with no keys set.
func Empty() *Config {
	return &Config{
		values:  map[string]string{},
		scripts: map[string]string{},
	}
}

// Get returns the top-level scalar for key, or "" when absent.
func (c *Config) Get(key string) string {
	if c == nil {
		return ""
	}
	return c.values[key]
}

// Script returns the command for a named script. ok is false when the
// script is not defined.
func (c *Config) Script(name string) (cmd string, ok bool) {
	if c == nil {
		return "", false
	}
	cmd, ok = c.scripts[name]
	return cmd, ok
}

// ScriptNames returns all defined script names, sorted.
func (c *Config) ScriptNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.scripts))
	for name := range c.scripts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Python returns the interpreter version constraint, possibly empty.
func (c *Config) Python() string { return c.Get(KeyPython) }

// Entrypoint returns the configured start command, possibly empty.
func (c *Config) Entrypoint() string { return c.Get(KeyEntrypoint) }

// VenvDir returns the virtual environment path relative to the root.
func (c *Config) VenvDir() string { return c.getOr(KeyVenv, DefaultVenv) }

// RequirementsFile returns the dependency declaration file name.
func (c *Config) RequirementsFile() string { return c.getOr(KeyRequirements, DefaultRequirements) }

// LockFile returns the lock artifact file name.
func (c *Config) LockFile() string { return c.getOr(KeyLock, DefaultLock) }

func (c *Config) getOr(key, fallback string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return fallback
}
