package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/printer"
	"github.com/urfave/cli/v3"
)

// StdinTarget runs the program piped on stdin.
const StdinTarget = "-"

// Run returns the "run" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a script from pvx.yaml, a Python file, or stdin inside the venv",
		ArgsUsage: "<script|file|-> [args...]",
		UsageText: `pvx run <script|file|-> [args...]

Resolution order:
  1. a script named in pvx.yaml (run with sh from the project root)
  2. a file relative to the current directory, then to the project root
  3. "-" reads a program from stdin

Without arguments, lists the configured scripts.`,
		SkipFlagParsing: true,
		ShellComplete: func(ctx context.Context, cmd *cli.Command) {
			project, err := clix.LoadProject()
			if err != nil {
				return
			}
			for _, name := range project.Config.ScriptNames() {
				fmt.Fprintln(app.Out(), name)
			}
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRunCmd(ctx, cmd, app)
		},
	}
}

func runRunCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	project, err := clix.LoadProject()
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		listScripts(app, project)
		return nil
	}
	if args[0] == "-h" || args[0] == "--help" {
		return cli.ShowSubcommandHelp(cmd)
	}

	target, rest := args[0], args[1:]

	if command, ok := project.Config.Script(target); ok {
		proc, err := project.ScriptProcess(target, command, rest)
		if err != nil {
			return err
		}
		return app.Tools.Exec(ctx, proc)
	}

	if target == StdinTarget {
		proc, err := project.PythonProcess(append([]string{StdinTarget}, rest...))
		if err != nil {
			return err
		}
		proc.Stdin = os.Stdin
		return app.Tools.Exec(ctx, proc)
	}

	path, ok := resolveFile(project, target)
	if !ok {
		return fmt.Errorf("unknown script or file: %s", target)
	}
	proc, err := project.PythonProcess(append([]string{path}, rest...))
	if err != nil {
		return err
	}
	return app.Tools.Exec(ctx, proc)
}

// resolveFile looks for target relative to the working directory, then to
// the project root.
func resolveFile(project *clix.Project, target string) (string, bool) {
	if isFile(target) {
		return target, true
	}
	if !filepath.IsAbs(target) {
		if path := project.Path(target); isFile(path) {
			return path, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func listScripts(app *clix.App, project *clix.Project) {
	names := project.Config.ScriptNames()
	if len(names) == 0 {
		fmt.Fprintln(app.Out(), printer.Faint("No scripts defined in pvx.yaml"))
		return
	}
	fmt.Fprintln(app.Out(), printer.Bold("Scripts:"))
	for _, name := range names {
		command, _ := project.Config.Script(name)
		fmt.Fprintf(app.Out(), "  %s %s\n", printer.Info(fmt.Sprintf("%-12s", name)), command)
	}
}
