package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/commands/add"
	"github.com/indaco/pvx/internal/commands/doctor"
	"github.com/indaco/pvx/internal/commands/execcmd"
	"github.com/indaco/pvx/internal/commands/gen"
	"github.com/indaco/pvx/internal/commands/initialize"
	"github.com/indaco/pvx/internal/commands/install"
	"github.com/indaco/pvx/internal/commands/remove"
	"github.com/indaco/pvx/internal/commands/run"
	"github.com/indaco/pvx/internal/commands/start"
	"github.com/indaco/pvx/internal/logging"
	"github.com/indaco/pvx/internal/printer"
	"github.com/indaco/pvx/internal/tui"
	"github.com/indaco/pvx/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and global flags for the pvx cli.
func New(app *clix.App) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "pvx",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Project workflow for Python on top of uv",
		EnableShellCompletion: true,
		// main prints errors and picks the exit code.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output (also NO_COLOR)",
			},
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Usage:   "Log delegated tool invocations to stderr",
				Sources: urfavecli.EnvVars("PVX_VERBOSE"),
			},
			&urfavecli.BoolFlag{
				Name:  "no-interactive",
				Usage: "Never prompt or show spinners (also " + tui.NoInteractiveEnv + ")",
			},
			&urfavecli.StringFlag{
				Name:      "theme",
				Usage:     "Prompt theme: " + strings.Join(tui.ThemeNames(), ", "),
				Value:     tui.DefaultTheme,
				Sources:   urfavecli.EnvVars("PVX_THEME"),
				Validator: tui.CheckTheme,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "")
			tui.SetNonInteractive(cmd.Bool("no-interactive"))
			if err := tui.CheckTheme(cmd.String("theme")); err != nil {
				return ctx, err
			}
			tui.SetTheme(cmd.String("theme"))
			app.Init(logging.New(cmd.Bool("verbose")))
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(app),
			install.Run(app),
			add.Run(app),
			remove.Run(app),
			run.Run(app),
			start.Run(app),
			execcmd.Run(app),
			doctor.Run(app),
			gen.Run(app),
		},
	}
}
