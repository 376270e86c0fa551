// Package toolchain wraps the external programs pvx orchestrates: the uv
// resolver, the host interpreter's venv module, and pyenv as an optional
// interpreter fallback. Every call is synchronous and blocking; only tool
// probes carry a timeout.
package toolchain

import (
	"context"
	"io"
)

// CompileOptions configures a resolver compile.
type CompileOptions struct {
	// Requirements is the dependency declaration file.
	Requirements string
	// Python is the interpreter the lock is resolved for.
	Python string
	// Dir is the working directory.
	Dir string
}

// SyncOptions configures an environment sync.
type SyncOptions struct {
	// Lock is the compiled lock artifact.
	Lock string
	// Python is the environment's interpreter.
	Python string
	// AllowEmpty passes --allow-empty-requirements for a header-only lock.
	AllowEmpty bool
	// Dir is the working directory.
	Dir string
}

// Process describes a user command run inside the project environment.
type Process struct {
	Name  string
	Args  []string
	Env   []string
	Dir   string
	Stdin io.Reader
}

// Runner is the set of external operations pvx needs.
type Runner interface {
	// FindPython resolves an interpreter path satisfying constraint
	// ("" means any).
	FindPython(ctx context.Context, constraint string) (string, error)
	// CreateVenv runs `<python> -m venv <dir>`.
	CreateVenv(ctx context.Context, python, dir string) error
	// Compile returns the resolver's compiled lock body.
	Compile(ctx context.Context, opts CompileOptions) ([]byte, error)
	// Sync makes the environment match the lock.
	Sync(ctx context.Context, opts SyncOptions) error
	// Exec runs an interactive process attached to the terminal.
	Exec(ctx context.Context, p Process) error
	// Version returns the first line of `<tool> --version`.
	Version(ctx context.Context, tool string) (string, error)
}
