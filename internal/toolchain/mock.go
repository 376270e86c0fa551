package toolchain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mock is a Runner for tests. Unset funcs succeed with zero values; every
// call is recorded in Calls as "Method arg...".
type Mock struct {
	FindPythonFn func(ctx context.Context, constraint string) (string, error)
	CreateVenvFn func(ctx context.Context, python, dir string) error
	CompileFn    func(ctx context.Context, opts CompileOptions) ([]byte, error)
	SyncFn       func(ctx context.Context, opts SyncOptions) error
	ExecFn       func(ctx context.Context, p Process) error
	VersionFn    func(ctx context.Context, tool string) (string, error)

	mu    sync.Mutex
	Calls []string
}

// Verify Mock implements Runner.
var _ Runner = (*Mock)(nil)

func (m *Mock) record(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Called reports how many recorded calls start with method.
func (m *Mock) Called(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method || strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

// FindPython implements Runner.
func (m *Mock) FindPython(ctx context.Context, constraint string) (string, error) {
	m.record("FindPython %s", constraint)
	if m.FindPythonFn != nil {
		return m.FindPythonFn(ctx, constraint)
	}
	return "/usr/bin/python3", nil
}

// CreateVenv implements Runner.
func (m *Mock) CreateVenv(ctx context.Context, python, dir string) error {
	m.record("CreateVenv %s %s", python, dir)
	if m.CreateVenvFn != nil {
		return m.CreateVenvFn(ctx, python, dir)
	}
	return nil
}

// Compile implements Runner.
func (m *Mock) Compile(ctx context.Context, opts CompileOptions) ([]byte, error) {
	m.record("Compile %s", opts.Requirements)
	if m.CompileFn != nil {
		return m.CompileFn(ctx, opts)
	}
	return nil, nil
}

// Sync implements Runner.
func (m *Mock) Sync(ctx context.Context, opts SyncOptions) error {
	m.record("Sync %s allowEmpty=%t", opts.Lock, opts.AllowEmpty)
	if m.SyncFn != nil {
		return m.SyncFn(ctx, opts)
	}
	return nil
}

// Exec implements Runner.
func (m *Mock) Exec(ctx context.Context, p Process) error {
	m.record("Exec %s %s", p.Name, strings.Join(p.Args, " "))
	if m.ExecFn != nil {
		return m.ExecFn(ctx, p)
	}
	return nil
}

// Version implements Runner.
func (m *Mock) Version(ctx context.Context, tool string) (string, error) {
	m.record("Version %s", tool)
	if m.VersionFn != nil {
		return m.VersionFn(ctx, tool)
	}
	return tool + " 0.0.0", nil
}
