package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRoot(t *testing.T) {
	tmp := t.TempDir()
	project := filepath.Join(tmp, "project")
	nested := filepath.Join(project, "src", "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(project, MarkerFile), "python: \"3.12\"\n")

	tests := []struct {
		name      string
		start     string
		wantDir   string
		wantFound bool
	}{
		{"root itself", project, project, true},
		{"nested directory", nested, project, true},
		{"outside project", tmp, tmp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := FindRoot(tt.start)
			if err != nil {
				t.Fatalf("FindRoot() error = %v", err)
			}
			if root.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", root.Dir, tt.wantDir)
			}
			if root.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", root.Found, tt.wantFound)
			}
		})
	}
}

func TestFindRoot_NearestMarkerWins(t *testing.T) {
	tmp := t.TempDir()
	inner := filepath.Join(tmp, "outer", "inner")
	writeFile(t, filepath.Join(tmp, "outer", MarkerFile), "")
	writeFile(t, filepath.Join(inner, MarkerFile), "")

	root, err := FindRoot(filepath.Join(inner))
	if err != nil {
		t.Fatal(err)
	}
	if root.Dir != inner {
		t.Errorf("Dir = %q, want %q", root.Dir, inner)
	}
}

func TestFindRoot_MarkerDirectoryIgnored(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, MarkerFile), 0o755); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if root.Found && root.Dir == tmp {
		t.Error("a directory named like the marker must not mark a project")
	}
}

func TestFindRoot_StatErrorsAreNotFatal(t *testing.T) {
	orig := statFn
	t.Cleanup(func() { statFn = orig })
	statFn = func(string) (os.FileInfo, error) { return nil, fs.ErrPermission }

	tmp := t.TempDir()
	root, err := FindRoot(tmp)
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if root.Found || root.Dir != tmp {
		t.Errorf("got %+v, want fallback to %q", root, tmp)
	}
}

func TestFindRootFromCwd(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, MarkerFile), "")
	sub := filepath.Join(tmp, "a")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	root, err := FindRootFromCwd()
	if err != nil {
		t.Fatal(err)
	}
	// macOS temp dirs resolve through /private; compare evaluated paths.
	want, _ := filepath.EvalSymlinks(tmp)
	got, _ := filepath.EvalSymlinks(root.Dir)
	if got != want || !root.Found {
		t.Errorf("got %+v, want root %q", root, want)
	}
}

func TestRoot_Paths(t *testing.T) {
	root := Root{Dir: filepath.FromSlash("/work/app"), Found: true}

	if got, want := root.ConfigPath(), filepath.FromSlash("/work/app/pvx.yaml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := root.Join(".venv"), filepath.FromSlash("/work/app/.venv"); got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
	abs := filepath.FromSlash("/opt/venv")
	if got := root.Join(abs); got != abs {
		t.Errorf("Join(abs) = %q, want %q", got, abs)
	}
	if got, want := root.Rel(filepath.FromSlash("/work/app/src/main.py")), filepath.FromSlash("src/main.py"); got != want {
		t.Errorf("Rel() = %q, want %q", got, want)
	}
	outside := filepath.FromSlash("/etc/hosts")
	if got := root.Rel(outside); got != outside {
		t.Errorf("Rel(outside) = %q, want %q", got, outside)
	}
}

func TestReadPyProject(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, PyProjectFile), `[project]
name = "demo"
version = "0.4.0"
requires-python = ">=3.11"

[tool.ruff]
line-length = 100
`)

	m, err := ReadPyProject(tmp)
	if err != nil {
		t.Fatalf("ReadPyProject() error = %v", err)
	}
	if m.Name != "demo" || m.Version != "0.4.0" || m.RequiresPython != ">=3.11" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestReadPyProject_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := ReadPyProject(t.TempDir())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		tmp := t.TempDir()
		writeFile(t, filepath.Join(tmp, PyProjectFile), "[project\nname=")
		if _, err := ReadPyProject(tmp); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestReadPythonVersion(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, PythonVersionFile), "# pinned\n\n3.12.4\n3.11\n")

	got, err := ReadPythonVersion(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if got != "3.12.4" {
		t.Errorf("ReadPythonVersion() = %q, want %q", got, "3.12.4")
	}
}

func TestSuggestPython(t *testing.T) {
	tests := []struct {
		name      string
		pyproject string
		pinned    string
		want      string
	}{
		{"nothing", "", "", ""},
		{"python-version only", "", "3.10\n", "3.10"},
		{"pyproject wins", "[project]\nrequires-python = \">=3.9\"\n", "3.10\n", ">=3.9"},
		{"pyproject without constraint", "[project]\nname = \"x\"\n", "3.10\n", "3.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			if tt.pyproject != "" {
				writeFile(t, filepath.Join(tmp, PyProjectFile), tt.pyproject)
			}
			if tt.pinned != "" {
				writeFile(t, filepath.Join(tmp, PythonVersionFile), tt.pinned)
			}
			if got := SuggestPython(tmp); got != tt.want {
				t.Errorf("SuggestPython() = %q, want %q", got, tt.want)
			}
		})
	}
}
