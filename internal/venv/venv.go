// Package venv describes a project's virtual environment layout and builds
// the process environment commands run in.
package venv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/indaco/pvx/internal/config"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/toolchain"
	"github.com/joho/godotenv"
)

// DotenvFile is loaded from the project root before running commands.
const DotenvFile = ".env"

// statFn is a variable for testing.
var statFn = os.Stat

// Env is a virtual environment directory.
type Env struct {
	Dir string
}

// New returns the environment configured for the project at root.
func New(root discovery.Root, cfg *config.Config) Env {
	return Env{Dir: root.Join(cfg.VenvDir())}
}

// BinDir returns the directory holding the environment's executables.
func (e Env) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Dir, "Scripts")
	}
	return filepath.Join(e.Dir, "bin")
}

// Python returns the path of the environment's interpreter.
func (e Env) Python() string {
	return filepath.Join(e.BinDir(), toolchain.ExeName("python"))
}

// Exists reports whether the environment has an interpreter.
func (e Env) Exists() bool {
	info, err := statFn(e.Python())
	return err == nil && !info.IsDir()
}

// LookPath returns the path of name inside the environment's bin directory.
// Names containing a path separator are not looked up.
func (e Env) LookPath(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return "", false
	}
	path := filepath.Join(e.BinDir(), toolchain.ExeName(name))
	info, err := statFn(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Environ returns base adjusted to run inside the environment: VIRTUAL_ENV
// is set, the bin directory is prepended to PATH and PYTHONHOME is dropped.
// Variables from dotenv are added only when base does not already define them.
func (e Env) Environ(base []string, dotenv map[string]string) []string {
	env := make([]string, 0, len(base)+len(dotenv)+2)
	seen := make(map[string]bool, len(base))
	path := ""

	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case key == "PYTHONHOME", key == "VIRTUAL_ENV":
			continue
		case isPathKey(key):
			path = value
			continue
		}
		seen[key] = true
		env = append(env, kv)
	}

	if path == "" {
		path = e.BinDir()
	} else {
		path = e.BinDir() + string(os.PathListSeparator) + path
	}
	env = append(env, "VIRTUAL_ENV="+e.Dir, "PATH="+path)
	seen["VIRTUAL_ENV"] = true
	seen["PATH"] = true

	keys := make([]string, 0, len(dotenv))
	for k := range dotenv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if seen[k] || k == "PYTHONHOME" {
			continue
		}
		env = append(env, k+"="+dotenv[k])
	}
	return env
}

func isPathKey(key string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(key, "PATH")
	}
	return key == "PATH"
}

// LoadDotenv reads <dir>/.env. A missing file yields no variables.
func LoadDotenv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, DotenvFile)
	if _, err := statFn(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return vars, nil
}
