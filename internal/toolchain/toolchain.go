package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/indaco/pvx/internal/core"
	"go.uber.org/zap"
)

// Tool names.
const (
	UV    = "uv"
	Pyenv = "pyenv"
)

// UVHint is printed when uv is missing.
const UVHint = "install it from https://docs.astral.sh/uv/getting-started/installation/"

// Toolchain implements Runner with real processes.
type Toolchain struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
	logger      *zap.Logger
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

// Verify Toolchain implements Runner.
var _ Runner = (*Toolchain)(nil)

// Option configures a Toolchain.
type Option func(*Toolchain)

// WithOutput redirects the output of streamed and interactive processes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(t *Toolchain) {
		t.stdout = stdout
		t.stderr = stderr
	}
}

// WithStdin sets the default stdin for interactive processes.
func WithStdin(r io.Reader) Option {
	return func(t *Toolchain) { t.stdin = r }
}

// New returns a Toolchain using os/exec and the process PATH.
func New(logger *zap.Logger, opts ...Option) *Toolchain {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Toolchain{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		logger:      logger,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Require fails with a MissingToolError when tool is not on PATH.
func (t *Toolchain) Require(tool, hint string) error {
	if _, err := t.lookPath(tool); err != nil {
		return &MissingToolError{Tool: tool, Hint: hint}
	}
	return nil
}

// FindPython asks uv for an interpreter and falls back to pyenv when uv
// cannot satisfy the constraint.
func (t *Toolchain) FindPython(ctx context.Context, constraint string) (string, error) {
	if err := t.Require(UV, UVHint); err != nil {
		return "", err
	}

	args := []string{"python", "find"}
	if constraint != "" {
		args = append(args, constraint)
	}
	out, uvErr := t.output(ctx, "", UV, args...)
	if uvErr == nil {
		if path := firstLine(out); path != "" {
			t.logger.Debug("resolved interpreter", zap.String("via", UV), zap.String("python", path))
			return path, nil
		}
		uvErr = errors.New("uv returned no interpreter path")
	}

	path, err := t.pyenvPython(ctx, constraint)
	if err != nil {
		t.logger.Debug("pyenv fallback failed", zap.Error(err))
		return "", &InterpreterError{Constraint: constraint, Err: uvErr}
	}
	t.logger.Debug("resolved interpreter", zap.String("via", Pyenv), zap.String("python", path))
	return path, nil
}

// pyenvPython resolves an interpreter through pyenv. A constraint is reduced
// to its first version number, which pyenv treats as a prefix.
func (t *Toolchain) pyenvPython(ctx context.Context, constraint string) (string, error) {
	if err := t.Require(Pyenv, ""); err != nil {
		return "", err
	}

	if constraint == "" {
		out, err := t.output(ctx, "", Pyenv, "which", "python")
		if err != nil {
			return "", err
		}
		return nonEmpty(firstLine(out), "pyenv which")
	}

	prefix := VersionPrefix(constraint)
	if prefix == "" {
		return "", fmt.Errorf("cannot derive a pyenv version from %q", constraint)
	}
	out, err := t.output(ctx, "", Pyenv, "latest", "--quiet", prefix)
	if err != nil {
		return "", err
	}
	version, err := nonEmpty(firstLine(out), "pyenv latest")
	if err != nil {
		return "", err
	}

	out, err = t.output(ctx, "", Pyenv, "prefix", version)
	if err != nil {
		return "", err
	}
	dir, err := nonEmpty(firstLine(out), "pyenv prefix")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bin", "python"), nil
}

// CreateVenv runs `<python> -m venv <dir>`.
func (t *Toolchain) CreateVenv(ctx context.Context, python, dir string) error {
	_, err := t.output(ctx, "", python, "-m", "venv", dir)
	return err
}

// Compile runs `uv pip compile` and returns the lock body from stdout.
func (t *Toolchain) Compile(ctx context.Context, opts CompileOptions) ([]byte, error) {
	if err := t.Require(UV, UVHint); err != nil {
		return nil, err
	}
	args := []string{"pip", "compile", opts.Requirements, "--quiet", "--no-header"}
	if opts.Python != "" {
		args = append(args, "--python", opts.Python)
	}
	return t.output(ctx, opts.Dir, UV, args...)
}

// Sync runs `uv pip sync`, streaming its progress to the terminal.
func (t *Toolchain) Sync(ctx context.Context, opts SyncOptions) error {
	if err := t.Require(UV, UVHint); err != nil {
		return err
	}
	args := []string{"pip", "sync", opts.Lock}
	if opts.Python != "" {
		args = append(args, "--python", opts.Python)
	}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty-requirements")
	}
	return t.stream(ctx, opts.Dir, UV, args...)
}

// Exec runs p attached to the terminal. A non-zero exit is returned as an
// interactive CommandError carrying the child's exit code.
func (t *Toolchain) Exec(ctx context.Context, p Process) error {
	cmd := t.execCommand(ctx, p.Name, p.Args...)
	cmd.Env = p.Env
	cmd.Dir = p.Dir
	cmd.Stdin = p.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = t.stdin
	}
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	done := t.trace(p.Name, p.Args, p.Dir)
	err := cmd.Run()
	done(err)
	if err == nil {
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &MissingToolError{Tool: p.Name}
	}
	return &CommandError{
		Name:        p.Name,
		Args:        p.Args,
		ExitCode:    exitCode(err),
		Err:         err,
		Interactive: true,
	}
}

// Version returns the first line of `<tool> --version`.
func (t *Toolchain) Version(ctx context.Context, tool string) (string, error) {
	if err := t.Require(tool, ""); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutShort)
	defer cancel()

	out, err := t.output(ctx, "", tool, "--version")
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s version check timeout: %w", tool, err)
		}
		return "", err
	}
	return nonEmpty(firstLine(out), tool+" --version")
}

// output runs a command and returns its stdout. Stderr is captured for the
// error.
func (t *Toolchain) output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := t.execCommand(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	done := t.trace(name, args, dir)
	err := cmd.Run()
	done(err)
	if err != nil {
		return nil, t.commandError(name, args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// stream runs a command with stdout and stderr forwarded. Stderr is also
// captured for the error.
func (t *Toolchain) stream(ctx context.Context, dir, name string, args ...string) error {
	cmd := t.execCommand(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stdout = t.stdout
	cmd.Stderr = io.MultiWriter(t.stderr, &stderr)

	done := t.trace(name, args, dir)
	err := cmd.Run()
	done(err)
	if err != nil {
		return t.commandError(name, args, stderr.String(), err)
	}
	return nil
}

func (t *Toolchain) commandError(name string, args []string, stderr string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &MissingToolError{Tool: name}
	}
	return &CommandError{
		Name:     name,
		Args:     args,
		Stderr:   stderr,
		ExitCode: exitCode(err),
		Err:      err,
	}
}

// trace logs a process start and returns a func that logs its end.
func (t *Toolchain) trace(name string, args []string, dir string) func(error) {
	start := time.Now()
	t.logger.Debug("exec", zap.String("tool", name), zap.Strings("args", args), zap.String("dir", dir))
	return func(err error) {
		fields := []zap.Field{zap.String("tool", name), zap.Duration("took", time.Since(start))}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		t.logger.Debug("exit", fields...)
	}
}

var versionNumber = regexp.MustCompile(`\d+(?:\.\d+)*`)

// VersionPrefix extracts the first version number of a constraint
// (">=3.11,<4" -> "3.11").
func VersionPrefix(constraint string) string {
	return versionNumber.FindString(constraint)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

func nonEmpty(s, what string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%s returned no output", what)
	}
	return s, nil
}

// ExeName appends the platform executable suffix.
func ExeName(name string) string {
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		return name + ".exe"
	}
	return name
}
