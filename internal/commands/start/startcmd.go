package start

import (
	"context"
	"errors"

	"github.com/indaco/pvx/internal/clix"
	"github.com/urfave/cli/v3"
)

// ScriptName is the script start prefers over the entrypoint.
const ScriptName = "start"

// ErrNothingToStart is returned when neither a start script nor an
// entrypoint is configured.
var ErrNothingToStart = errors.New("no start script or entrypoint configured")

// Run returns the "start" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:            "start",
		Usage:           "Run the start script, or the entrypoint, inside the venv",
		ArgsUsage:       "[args...]",
		SkipFlagParsing: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStartCmd(ctx, cmd, app)
		},
	}
}

func runStartCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	project, err := clix.LoadProject()
	if err != nil {
		return err
	}

	command, ok := project.Config.Script(ScriptName)
	if !ok || command == "" {
		command = project.Config.Entrypoint()
	}
	if command == "" {
		return ErrNothingToStart
	}

	proc, err := project.ScriptProcess(ScriptName, command, cmd.Args().Slice())
	if err != nil {
		return err
	}
	return app.Tools.Exec(ctx, proc)
}
