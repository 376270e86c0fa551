package clix

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/toolchain"
)

func TestLoadProject_FromSubdir(t *testing.T) {
	root := t.TempDir()
	yaml := "venv: env\nrequirements: deps.txt\nscripts:\n  test: pytest\n"
	if err := os.WriteFile(filepath.Join(root, discovery.MarkerFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	p, err := LoadProject()
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(p.Root.Dir)
	if !p.Root.Found || gotRoot != wantRoot {
		t.Errorf("Root = %+v, want %q", p.Root, wantRoot)
	}
	if p.RequirementsPath() != filepath.Join(p.Root.Dir, "deps.txt") {
		t.Errorf("RequirementsPath() = %q", p.RequirementsPath())
	}
	if p.LockPath() != filepath.Join(p.Root.Dir, "requirements.lock") {
		t.Errorf("LockPath() = %q", p.LockPath())
	}
	if p.Env().Dir != filepath.Join(p.Root.Dir, "env") {
		t.Errorf("Env().Dir = %q", p.Env().Dir)
	}
	if cmd, ok := p.Config.Script("test"); !ok || cmd != "pytest" {
		t.Errorf("Script(test) = %q, %v", cmd, ok)
	}
}

func TestLoadProject_NoMarker(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	p, err := LoadProject()
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if p.Root.Found {
		t.Error("Found = true without a marker")
	}
	if len(p.Config.ScriptNames()) != 0 || p.Config.Python() != "" {
		t.Error("missing config should be empty")
	}
	if err := p.RequireEnv(); err == nil || !strings.Contains(err.Error(), "run `pvx install` first") {
		t.Errorf("RequireEnv() error = %v", err)
	}
}

func TestProject_Environ(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PVX_TEST_FROM_DOTENV=yes\nHOME=/nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", "/home/tester")

	p, err := LoadProjectAt(discovery.Root{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	env, err := p.Environ()
	if err != nil {
		t.Fatal(err)
	}

	joined := strings.Join(env, "\n")
	for _, want := range []string{
		"PVX_TEST_FROM_DOTENV=yes",
		"HOME=/home/tester",
		"VIRTUAL_ENV=" + filepath.Join(dir, ".venv"),
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Environ() missing %q", want)
		}
	}
	if strings.Contains(joined, "HOME=/nope") {
		t.Error(".env must not override existing variables")
	}
}

func TestApp_Init(t *testing.T) {
	mock := &toolchain.Mock{}
	var out bytes.Buffer
	app := &App{Tools: mock, Stdout: &out}
	app.Init(nil)

	if app.Tools != mock {
		t.Error("Init replaced a preset Runner")
	}
	if app.Logger == nil || app.Index == nil {
		t.Error("Init left defaults unset")
	}
	if app.Out() != &out || app.Err() != os.Stderr {
		t.Error("unexpected writers")
	}
	if app.Installer() == nil {
		t.Error("Installer() returned nil")
	}
}

func TestProject_ScriptProcess(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadProjectAt(discovery.Root{Dir: dir, Found: true})
	if err != nil {
		t.Fatal(err)
	}

	proc, err := p.ScriptProcess("test", "python -m pytest", []string{"-k", "smoke"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"-c", `python -m pytest "$@"`, "test", "-k", "smoke"}
	if proc.Name != Shell || proc.Dir != dir || strings.Join(proc.Args, "|") != strings.Join(want, "|") {
		t.Errorf("ScriptProcess() = %+v", proc)
	}
	if len(proc.Env) == 0 {
		t.Error("ScriptProcess() should carry the venv environment")
	}
}

func TestProject_PythonProcess(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadProjectAt(discovery.Root{Dir: dir, Found: true})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.PythonProcess([]string{"main.py"}); err == nil {
		t.Fatal("expected error without a venv")
	}

	env := p.Env()
	if err := os.MkdirAll(env.BinDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.Python(), nil, 0o755); err != nil {
		t.Fatal(err)
	}

	proc, err := p.PythonProcess([]string{"main.py", "--debug"})
	if err != nil {
		t.Fatal(err)
	}
	if proc.Name != env.Python() || proc.Dir != "" || strings.Join(proc.Args, " ") != "main.py --debug" {
		t.Errorf("PythonProcess() = %+v", proc)
	}
}
