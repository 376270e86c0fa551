package gen

import (
	"context"
	"fmt"
	"text/template"

	"github.com/indaco/pvx/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "gen" command and its subcommands.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "Generate shell integration scripts",
		Commands: []*cli.Command{
			scriptCommand(app, "completions", "Print a shell completion script", completionTemplates),
			scriptCommand(app, "autoactivate", "Print a hook that activates the project venv on cd", autoactivateTemplates),
			venvDirCommand(app),
		},
	}
}

func scriptCommand(app *clix.App, name, usage string, t *template.Template) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[bash|zsh|fish]",
		UsageText: fmt.Sprintf("pvx gen %s [bash|zsh|fish]\n\nWithout an argument the shell comes from %s, then SHELL.", name, ShellEnv),
		ShellComplete: func(ctx context.Context, cmd *cli.Command) {
			for _, s := range Shells {
				fmt.Fprintln(app.Out(), s)
			}
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 1 {
				return cli.Exit(fmt.Sprintf("gen %s accepts a single shell", name), 1)
			}
			shell, err := DetectShell(cmd.Args().First())
			if err != nil {
				return err
			}
			script, err := render(t, shell, cmd.Root().Name)
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out(), script)
			return nil
		},
	}
}

// venvDirCommand prints the venv bin directory of the project owning the
// working directory, or nothing outside a project. Used by the autoactivate
// hooks.
func venvDirCommand(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:   "venv-dir",
		Hidden: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			project, err := clix.LoadProject()
			if err != nil {
				return err
			}
			if !project.Root.Found {
				return nil
			}
			fmt.Fprintln(app.Out(), project.Env().BinDir())
			return nil
		},
	}
}
