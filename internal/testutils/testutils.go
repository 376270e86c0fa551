// Package testutils holds helpers shared by command tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/venv"
	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns what it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	return capture(&os.Stdout, fn)
}

// CaptureStderr runs fn and returns what it wrote to os.Stderr.
func CaptureStderr(fn func()) (string, error) {
	return capture(&os.Stderr, fn)
}

func capture(target **os.File, fn func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	orig := *target
	*target = w
	defer func() { *target = orig }()

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	if err := w.Close(); err != nil {
		return "", err
	}
	<-done
	_ = r.Close()
	return buf.String(), copyErr
}

// BuildCLIForTests wraps commands in a root command that returns errors
// instead of exiting.
func BuildCLIForTests(app *clix.App, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:           "pvx",
		Commands:       commands,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			app.Init(nil)
			return ctx, nil
		},
	}
}

// RunCLITest runs args inside workDir and fails the test on error.
func RunCLITest(t *testing.T, appCli *cli.Command, args []string, workDir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, appCli, args, workDir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs args inside workDir and returns the error.
func RunCLITestAllowError(t *testing.T, appCli *cli.Command, args []string, workDir string) error {
	t.Helper()
	if workDir != "" {
		t.Chdir(workDir)
	}
	return appCli.Run(context.Background(), args)
}

// WriteTempConfig writes pvx.yaml into dir and returns its path.
func WriteTempConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, dir, discovery.MarkerFile, content)
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// FakeVenv lays out dir/.venv with an interpreter stub and returns it.
func FakeVenv(t *testing.T, dir string) venv.Env {
	t.Helper()
	env := venv.Env{Dir: filepath.Join(dir, ".venv")}
	if err := os.MkdirAll(env.BinDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.Python(), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return env
}
