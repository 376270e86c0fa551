package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/operations"
	"github.com/indaco/pvx/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "rm" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove packages from the requirements file and install",
		ArgsUsage: "<pkg>...",
		UsageText: "pvx rm <pkg>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRemoveCmd(ctx, cmd, app)
		},
	}
}

func runRemoveCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	if cmd.NArg() == 0 {
		return cli.Exit("rm requires at least one package", 1)
	}

	project, err := clix.LoadProject()
	if err != nil {
		return err
	}
	reqFile := project.Config.RequirementsFile()

	result, err := operations.RemoveRequirements(project.RequirementsPath(), cmd.Args().Slice())
	if errors.Is(err, operations.ErrNoMatch) {
		return fmt.Errorf("%w in %s", operations.ErrNoMatch, reqFile)
	}
	if err != nil {
		return err
	}
	for _, name := range result.Changed {
		fmt.Fprintln(app.Out(), printer.Success(fmt.Sprintf("Removed %s", name)))
	}
	for _, name := range result.Skipped {
		fmt.Fprintln(app.Out(), printer.Warning(fmt.Sprintf("%s is not in %s", name, reqFile)))
	}

	_, err = app.Installer().Install(ctx, project.Root, project.Config, operations.InstallOptions{})
	return err
}
