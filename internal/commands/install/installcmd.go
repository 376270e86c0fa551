package install

import (
	"context"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/operations"
	"github.com/urfave/cli/v3"
)

// Run returns the "install" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "install",
		Aliases:   []string{"sync"},
		Usage:     "Create the virtual environment and sync it with the lock",
		UsageText: "pvx install [--force]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Recompile the lock even when it is up to date",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInstallCmd(ctx, cmd, app)
		},
	}
}

func runInstallCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	project, err := clix.LoadProject()
	if err != nil {
		return err
	}
	_, err = app.Installer().Install(ctx, project.Root, project.Config, operations.InstallOptions{
		Force: cmd.Bool("force"),
	})
	return err
}
