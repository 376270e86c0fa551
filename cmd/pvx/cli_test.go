package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/pvx/internal/toolchain"
	urfavecli "github.com/urfave/cli/v3"
)

func TestRunCLI_InitExistingConfig(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "pvx.yaml"), []byte("python: \"3.12\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(tmp)

	err := runCLI([]string{"pvx", "--no-interactive", "init", "--yes"})
	if err == nil {
		t.Fatal("expected error for existing pvx.yaml, got nil")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), 1},
		{"cli exit", urfavecli.Exit("bad input", 1), 1},
		{"cli exit custom", urfavecli.Exit("usage", 2), 2},
		{"delegated tool", &toolchain.CommandError{Name: "uv", ExitCode: 3}, 3},
		{"wrapped delegated tool", fmt.Errorf("install: %w", &toolchain.CommandError{Name: "uv", ExitCode: 7}), 7},
		{"tool killed", &toolchain.CommandError{Name: "uv", ExitCode: -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsReported(t *testing.T) {
	if isReported(errors.New("x")) {
		t.Error("plain errors are not reported")
	}
	if isReported(&toolchain.CommandError{Name: "uv"}) {
		t.Error("captured tool failures must be printed")
	}
	if !isReported(&toolchain.CommandError{Name: "sh", Interactive: true}) {
		t.Error("interactive failures already reached the terminal")
	}
}
