package add

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/operations"
	"github.com/indaco/pvx/internal/printer"
	"github.com/indaco/pvx/internal/requirements"
	"github.com/indaco/pvx/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "add" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add packages to the requirements file and install",
		ArgsUsage: "<pkg[@spec]>...",
		UsageText: `pvx add [--latest|--compatible] <pkg[@spec]>...

  pvx add requests            requests
  pvx add flask@3.0           flask==3.0
  pvx add "httpx@>=0.27"      httpx>=0.27
  pvx add --latest rich       rich==<latest on PyPI>
  pvx add --compatible rich   rich~=<major>.<minor>`,
		MutuallyExclusiveFlags: []cli.MutuallyExclusiveFlags{
			{
				Flags: [][]cli.Flag{
					{&cli.BoolFlag{Name: "latest", Usage: "Pin to the latest version published on PyPI"}},
					{&cli.BoolFlag{Name: "compatible", Usage: "Pin to ~= the latest major.minor on PyPI"}},
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAddCmd(ctx, cmd, app)
		},
	}
}

func runAddCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	if cmd.NArg() == 0 {
		return cli.Exit("add requires at least one package", 1)
	}

	mode := requirements.PinNone
	switch {
	case cmd.Bool("latest"):
		mode = requirements.PinExact
	case cmd.Bool("compatible"):
		mode = requirements.PinCompatible
	}

	lines := make([]string, 0, cmd.NArg())
	for _, arg := range cmd.Args().Slice() {
		line, err := resolveLine(ctx, app, arg, mode)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	project, err := clix.LoadProject()
	if err != nil {
		return err
	}
	reqFile := project.Config.RequirementsFile()

	result, err := operations.AddRequirements(project.RequirementsPath(), lines)
	if err != nil {
		return err
	}
	for _, line := range result.Changed {
		fmt.Fprintln(app.Out(), printer.Success(fmt.Sprintf("Added %s", line)))
	}
	for _, line := range result.Skipped {
		fmt.Fprintln(app.Out(), printer.Warning(fmt.Sprintf("%s is already in %s", line, reqFile)))
	}

	_, err = app.Installer().Install(ctx, project.Root, project.Config, operations.InstallOptions{})
	return err
}

// resolveLine turns an argument into a requirement line, fetching the latest
// version from the package index when a pin mode is set.
func resolveLine(ctx context.Context, app *clix.App, arg string, mode requirements.PinMode) (string, error) {
	line, err := requirements.FromArg(arg)
	if err != nil {
		return "", err
	}
	if mode == requirements.PinNone {
		return line, nil
	}
	if strings.Contains(arg, "@") {
		return "", fmt.Errorf("%s already names a version; drop --latest/--compatible", arg)
	}

	name := requirements.Name(line)
	var latest string
	err = tui.WithSpinner(fmt.Sprintf("Fetching latest version of %s", name), func() error {
		v, err := app.Index.LatestVersion(ctx, name)
		latest = v
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest version of %s: %w", name, err)
	}
	return requirements.Pin(line, latest, mode), nil
}
