// Package clix holds the state shared by every pvx command: the toolchain,
// the logger and the project an invocation operates on.
package clix

import (
	"context"
	"io"
	"os"

	"github.com/indaco/pvx/internal/operations"
	"github.com/indaco/pvx/internal/pypi"
	"github.com/indaco/pvx/internal/toolchain"
	"github.com/indaco/pvx/internal/tui"
	"go.uber.org/zap"
)

// PackageIndex looks up published package versions.
type PackageIndex interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// Verify the PyPI client implements PackageIndex.
var _ PackageIndex = (*pypi.Client)(nil)

// App is created once per process and filled in by the root command's Before
// hook. Fields left nil get real implementations; tests preset mocks.
type App struct {
	Tools  toolchain.Runner
	Index  PackageIndex
	Logger *zap.Logger

	// Stdout and Stderr default to the process streams at call time.
	Stdout io.Writer
	Stderr io.Writer
}

// Init fills unset fields. It is safe to call more than once.
func (a *App) Init(logger *zap.Logger) {
	if logger != nil {
		a.Logger = logger
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if a.Tools == nil {
		a.Tools = toolchain.New(a.Logger, toolchain.WithOutput(a.Out(), a.Err()))
	}
	if a.Index == nil {
		a.Index = pypi.NewClient()
	}
}

// Out returns the writer for command output.
func (a *App) Out() io.Writer {
	if a.Stdout != nil {
		return a.Stdout
	}
	return os.Stdout
}

// Err returns the writer for diagnostics.
func (a *App) Err() io.Writer {
	if a.Stderr != nil {
		return a.Stderr
	}
	return os.Stderr
}

// Installer returns the reconciliation flow wired to the app's toolchain.
func (a *App) Installer() *operations.Installer {
	a.Init(nil)
	return operations.NewInstaller(a.Tools,
		operations.WithLogger(a.Logger),
		operations.WithOutput(a.Out()),
		operations.WithProgress(tui.WithSpinner),
	)
}
