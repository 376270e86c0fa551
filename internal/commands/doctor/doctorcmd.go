package doctor

import (
	"context"
	"fmt"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/version"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(app *clix.App) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Report project, interpreter and tool status",
		UsageText: "pvx doctor [--format text|json|yaml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml",
				Value:   string(FormatText),
				Validator: func(s string) error {
					_, err := ParseOutputFormat(s)
					return err
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, app)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, app *clix.App) error {
	format, err := ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	report := Collect(ctx, app.Tools, version.GetVersion())
	out, err := NewFormatter(format).Format(report)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out(), out)
	return nil
}
