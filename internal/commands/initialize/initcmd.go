package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/config"
	"github.com/indaco/pvx/internal/core"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/printer"
	"github.com/indaco/pvx/internal/tui"
	"github.com/urfave/cli/v3"
)

// promptFn is a variable for testing.
var promptFn = tui.PromptInit

// Run returns the "init" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create pvx.yaml and an empty requirements file",
		ArgsUsage: "[dir]",
		UsageText: "pvx init [dir] [--python <constraint>] [--template basic|app|lib] [--yes]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "python",
				Usage: "Interpreter constraint (defaults to pyproject.toml requires-python or .python-version)",
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Config template: basic, app, lib",
				Value:   "basic",
				Validator: func(name string) error {
					_, err := config.GetTemplate(name)
					return err
				},
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept defaults without prompting",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(cmd, app)
		},
	}
}

// runInitCmd writes pvx.yaml and requirements.txt into the target directory.
func runInitCmd(cmd *cli.Command, app *clix.App) error {
	if cmd.NArg() > 1 {
		return cli.Exit("init accepts at most one directory", 1)
	}

	dir := cmd.Args().First()
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, core.PermDir); err != nil {
		return fmt.Errorf("failed to create %q: %w", abs, err)
	}

	configPath := filepath.Join(abs, discovery.MarkerFile)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", discovery.MarkerFile, abs)
	}

	answers := tui.InitAnswers{
		Python:   cmd.String("python"),
		Template: cmd.String("template"),
	}
	if answers.Python == "" {
		answers.Python = discovery.SuggestPython(abs)
	}
	if !cmd.Bool("yes") && tui.IsInteractive() {
		if err := promptFn(&answers, templateChoices()); err != nil {
			return err
		}
	}

	tmpl, err := config.GetTemplate(answers.Template)
	if err != nil {
		return err
	}

	opts := config.InitOptions{Python: answers.Python, Template: *tmpl}
	if err := config.WriteDefault(configPath, opts); err != nil {
		return err
	}
	fmt.Fprintln(app.Out(), printer.Success(fmt.Sprintf("Created %s", configPath)))

	reqPath := filepath.Join(abs, config.DefaultRequirements)
	created, err := createEmpty(reqPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(app.Out(), printer.Success(fmt.Sprintf("Created %s", reqPath)))
	} else {
		fmt.Fprintln(app.Out(), printer.Faint(fmt.Sprintf("Kept existing %s", reqPath)))
	}

	fmt.Fprintln(app.Out(), printer.Faint("Next: pvx add <package> or pvx install"))
	return nil
}

func templateChoices() []tui.Choice {
	templates := config.AllTemplates()
	choices := make([]tui.Choice, len(templates))
	for i, t := range templates {
		choices[i] = tui.Choice{Label: fmt.Sprintf("%-6s %s", t.Name, t.Description), Value: t.Name}
	}
	return choices
}

// createEmpty creates path unless it exists and reports whether it did.
func createEmpty(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, core.PermFile)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %q: %w", path, err)
	}
	return true, f.Close()
}
