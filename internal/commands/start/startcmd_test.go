package start

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/testutils"
	"github.com/indaco/pvx/internal/toolchain"
	"github.com/urfave/cli/v3"
)

func TestStartCmd(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    []string
		wantCmd string
		wantErr error
	}{
		{
			name:    "start script wins over entrypoint",
			config:  "entrypoint: python main.py\nscripts:\n  start: gunicorn app:app\n",
			args:    []string{"--workers", "2"},
			wantCmd: `gunicorn app:app "$@"`,
		},
		{
			name:    "entrypoint fallback",
			config:  "entrypoint: \"python -m app\"\nscripts:\n  test: pytest\n",
			wantCmd: `python -m app "$@"`,
		},
		{
			name:    "nothing configured",
			config:  "scripts:\n  test: pytest\n",
			wantErr: ErrNothingToStart,
		},
		{
			name:    "no config at all",
			wantErr: ErrNothingToStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.config != "" {
				testutils.WriteTempConfig(t, root, tt.config)
			}

			var got []toolchain.Process
			mock := &toolchain.Mock{ExecFn: func(_ context.Context, p toolchain.Process) error {
				got = append(got, p)
				return nil
			}}
			app := &clix.App{Tools: mock}
			appCli := testutils.BuildCLIForTests(app, []*cli.Command{Run(app)})

			err := testutils.RunCLITestAllowError(t, appCli, append([]string{"pvx", "start"}, tt.args...), root)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if len(got) != 0 {
					t.Error("nothing should run")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 {
				t.Fatalf("expected one exec, got %d", len(got))
			}
			if got[0].Args[1] != tt.wantCmd {
				t.Errorf("command = %q, want %q", got[0].Args[1], tt.wantCmd)
			}
			if strings.Join(got[0].Args[3:], " ") != strings.Join(tt.args, " ") {
				t.Errorf("forwarded args = %q, want %q", got[0].Args[3:], tt.args)
			}
		})
	}
}
