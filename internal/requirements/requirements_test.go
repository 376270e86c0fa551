package requirements

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"requests":       "requests",
		"Flask_Login":    "flask-login",
		"zope.interface": "zope-interface",
		"a__-._b":        "a-b",
		"  Django ":      "django",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		line, want string
	}{
		{"requests", "requests"},
		{"requests>=2.31", "requests"},
		{"Flask_Login==0.6.3", "flask-login"},
		{"httpx[http2]~=0.27", "httpx"},
		{"pkg @ https://example.com/pkg.whl", "pkg"},
		{"numpy; python_version >= '3.10'", "numpy"},
		{"  uvicorn  # server", "uvicorn"},
		{"# comment", ""},
		{"", ""},
		{"-r base.txt", ""},
		{"--index-url https://pypi.org/simple", ""},
	}
	for _, tt := range tests {
		if got := Name(tt.line); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFromArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "requests", want: "requests"},
		{arg: "Flask_Login@0.6", want: "flask-login==0.6"},
		{arg: "requests@>=2.31", want: "requests>=2.31"},
		{arg: "requests@~=2.31", want: "requests~=2.31"},
		{arg: "requests@!=2.0", want: "requests!=2.0"},
		{arg: "httpx[http2]@0.27.0", want: "httpx[http2]==0.27.0"},
		{arg: "httpx[http2, cli]", want: "httpx[http2,cli]"},
		{arg: "pkg@https://example.com/pkg.whl", want: "pkg @ https://example.com/pkg.whl"},
		{arg: "", wantErr: true},
		{arg: "bad name", wantErr: true},
		{arg: "-e", wantErr: true},
		{arg: "requests@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := FromArg(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromArg(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FromArg(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestPin(t *testing.T) {
	tests := []struct {
		version string
		mode    PinMode
		want    string
	}{
		{"2.32.3", PinNone, "requests"},
		{"2.32.3", PinExact, "requests==2.32.3"},
		{"2.32.3", PinCompatible, "requests~=2.32"},
		{"2.0rc1", PinCompatible, "requests~=2.0"},
		{"7", PinCompatible, "requests~=7.0"},
	}
	for _, tt := range tests {
		if got := Pin("requests", tt.version, tt.mode); got != tt.want {
			t.Errorf("Pin(%q, %d) = %q, want %q", tt.version, tt.mode, got, tt.want)
		}
	}
}

func TestFile_AddThenRemoveRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	original := "flask>=3\n# web\nuvicorn\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Append("requests") {
		t.Fatal("Append() should report a change")
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	f, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := f.Remove("requests"); n != 1 {
		t.Fatalf("Remove() = %d, want 1", n)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("content after add+rm = %q, want %q", data, original)
	}
}

func TestFile_AppendDuplicateIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(path, []byte("requests\nflask\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	before := f.Lines()

	if f.Append("requests") {
		t.Error("Append() of an existing line should report no change")
	}
	if f.Append("  flask ") {
		t.Error("Append() should ignore surrounding whitespace")
	}
	if diff := cmp.Diff(before, f.Lines()); diff != "" {
		t.Errorf("lines changed (-before +after):\n%s", diff)
	}
	if !f.Append("requests==2.32.3") {
		t.Error("a different specifier is a different line")
	}
}

func TestFile_RemoveMatchesNormalizedName(t *testing.T) {
	f := &File{lines: []string{
		"Flask_Login==0.6",
		"flask",
		"flask-login>=0.5 ; python_version>'3.8'",
		"-r other.txt",
	}}

	if n := f.Remove("flask.login"); n != 2 {
		t.Errorf("Remove() = %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"flask", "-r other.txt"}, f.Lines()); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
	if n := f.Remove("django"); n != 0 {
		t.Errorf("Remove(django) = %d, want 0", n)
	}
	if f.Count() != 1 {
		t.Errorf("Count() = %d, want 1", f.Count())
	}
}

func TestFile_RemovePrefersExactLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		arg   string
		want  []string
		count int
	}{
		{
			name:  "bare name keeps other specifier",
			lines: []string{"flask", "requests>=2.0", "requests"},
			arg:   "requests",
			want:  []string{"flask", "requests>=2.0"},
			count: 1,
		},
		{
			name:  "pinned argument",
			lines: []string{"requests>=2.0", "requests==2.32.3"},
			arg:   "requests@2.32.3",
			want:  []string{"requests>=2.0"},
			count: 1,
		},
		{
			name:  "no exact line falls back to name",
			lines: []string{"Requests>=2.0", "flask"},
			arg:   "requests",
			want:  []string{"flask"},
			count: 1,
		},
		{
			name:  "specifier argument without exact line",
			lines: []string{"requests>=2.0"},
			arg:   "requests@<3",
			want:  []string{},
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{lines: tt.lines}
			if n := f.Remove(tt.arg); n != tt.count {
				t.Errorf("Remove(%q) = %d, want %d", tt.arg, n, tt.count)
			}
			if diff := cmp.Diff(tt.want, f.Lines(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("unexpected lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingAndCRLF(t *testing.T) {
	dir := t.TempDir()

	f, err := Load(filepath.Join(dir, "nope.txt"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if len(f.Lines()) != 0 {
		t.Errorf("missing file should load empty, got %v", f.Lines())
	}

	path := filepath.Join(dir, "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, f.Lines()); diff != "" {
		t.Errorf("CRLF lines (-want +got):\n%s", diff)
	}
}

func TestIsEmpty(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"zero bytes", "", true},
		{"whitespace", "\n  \n\t\n", true},
		{"comments only", "# nothing yet\n", true},
		{"one requirement", "\nrequests\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := IsEmpty(path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := IsEmpty(filepath.Join(dir, "missing")); err == nil {
		t.Error("IsEmpty(missing) should fail")
	}
}
