package execcmd

import (
	"context"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/toolchain"
	"github.com/urfave/cli/v3"
)

// Run returns the "exec" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:            "exec",
		Usage:           "Run any command with the venv on PATH",
		ArgsUsage:       "<command> [args...]",
		UsageText:       "pvx exec <command> [args...]",
		SkipFlagParsing: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runExecCmd(ctx, cmd, app)
		},
	}
}

func runExecCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("exec requires a command", 1)
	}

	project, err := clix.LoadProject()
	if err != nil {
		return err
	}
	env, err := project.Environ()
	if err != nil {
		return err
	}

	// The child's PATH is not consulted when resolving the executable, so
	// venv binaries are looked up explicitly.
	name := args[0]
	if path, ok := project.Env().LookPath(name); ok {
		name = path
	}

	return app.Tools.Exec(ctx, toolchain.Process{
		Name: name,
		Args: args[1:],
		Env:  env,
	})
}
