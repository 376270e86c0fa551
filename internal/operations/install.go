// Package operations holds the reconciliation flow shared by the install,
// add and rm commands.
package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/indaco/pvx/internal/config"
	"github.com/indaco/pvx/internal/core"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/lockfile"
	"github.com/indaco/pvx/internal/printer"
	"github.com/indaco/pvx/internal/requirements"
	"github.com/indaco/pvx/internal/toolchain"
	"github.com/indaco/pvx/internal/venv"
	"go.uber.org/zap"
)

// InstallOptions configures a reconciliation run.
type InstallOptions struct {
	// Force recompiles the lock even when it is fresh.
	Force bool
}

// InstallResult describes what a reconciliation run did.
type InstallResult struct {
	Python              string
	VenvDir             string
	VenvCreated         bool
	RequirementsCreated bool
	Compiled            bool
	Empty               bool
	Reason              lockfile.Reason
}

// ProgressFunc runs action while showing title to the user.
type ProgressFunc func(title string, action func() error) error

func runDirect(_ string, action func() error) error { return action() }

// Installer brings a project's environment in line with its lock.
type Installer struct {
	tools    toolchain.Runner
	logger   *zap.Logger
	out      io.Writer
	progress ProgressFunc
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithOutput sets where progress messages are written.
func WithOutput(w io.Writer) InstallerOption {
	return func(i *Installer) { i.out = w }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) InstallerOption {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithProgress wraps the compile step, typically with a spinner.
func WithProgress(fn ProgressFunc) InstallerOption {
	return func(i *Installer) {
		if fn != nil {
			i.progress = fn
		}
	}
}

// NewInstaller creates an Installer backed by tools.
func NewInstaller(tools toolchain.Runner, opts ...InstallerOption) *Installer {
	i := &Installer{
		tools:    tools,
		logger:   zap.NewNop(),
		out:      os.Stdout,
		progress: runDirect,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install resolves an interpreter, ensures the virtual environment exists,
// recompiles the lock when the requirements hash changed and syncs the
// environment against the lock.
func (i *Installer) Install(ctx context.Context, root discovery.Root, cfg *config.Config, opts InstallOptions) (*InstallResult, error) {
	env := venv.New(root, cfg)
	reqPath := root.Join(cfg.RequirementsFile())
	lockPath := root.Join(cfg.LockFile())
	result := &InstallResult{VenvDir: env.Dir}

	python, err := i.tools.FindPython(ctx, cfg.Python())
	if err != nil {
		return nil, err
	}
	result.Python = python

	if !env.Exists() {
		if err := i.tools.CreateVenv(ctx, python, env.Dir); err != nil {
			return nil, fmt.Errorf("failed to create virtual environment: %w", err)
		}
		result.VenvCreated = true
		fmt.Fprintln(i.out, printer.Success(fmt.Sprintf("Created virtual environment at %s", root.Rel(env.Dir))))
	}

	created, err := ensureFile(reqPath)
	if err != nil {
		return nil, err
	}
	if created {
		result.RequirementsCreated = true
		fmt.Fprintln(i.out, printer.Warning(fmt.Sprintf("%s not found; created an empty one", root.Rel(reqPath))))
	}

	empty, err := requirements.IsEmpty(reqPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", reqPath, err)
	}
	result.Empty = empty

	status, err := lockfile.Check(reqPath, lockPath)
	if err != nil {
		return nil, err
	}
	result.Reason = status.Reason
	i.logger.Debug("lock status",
		zap.String("lock", lockPath),
		zap.String("reason", string(status.Reason)),
		zap.String("hash", status.Hash),
		zap.String("locked", status.LockedHash),
	)

	if !status.Fresh || opts.Force {
		if err := i.compile(ctx, env, reqPath, lockPath, status.Hash, empty); err != nil {
			return nil, err
		}
		result.Compiled = true
		fmt.Fprintln(i.out, printer.Success(fmt.Sprintf("Locked %s (%s)", root.Rel(lockPath), status.Reason)))
	} else {
		fmt.Fprintln(i.out, printer.Faint(fmt.Sprintf("%s is up to date", root.Rel(lockPath))))
	}

	err = i.tools.Sync(ctx, toolchain.SyncOptions{
		Lock:       lockPath,
		Python:     env.Python(),
		AllowEmpty: empty,
		Dir:        root.Dir,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// compile writes a fresh lock. An empty requirements file skips the resolver
// and produces a header-only lock.
func (i *Installer) compile(ctx context.Context, env venv.Env, reqPath, lockPath, hash string, empty bool) error {
	var body []byte
	if !empty {
		err := i.progress("Compiling "+filepath.Base(reqPath), func() error {
			out, err := i.tools.Compile(ctx, toolchain.CompileOptions{
				Requirements: reqPath,
				Python:       env.Python(),
				Dir:          filepath.Dir(lockPath),
			})
			body = out
			return err
		})
		if err != nil {
			return err
		}
	}
	return lockfile.Write(lockPath, hash, body)
}

// ensureFile creates an empty file at path if none exists and reports whether
// it did.
func ensureFile(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, core.PermFile)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %q: %w", path, err)
	}
	return true, f.Close()
}
