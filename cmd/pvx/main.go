package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/indaco/pvx/internal/cli"
	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/printer"
	"github.com/indaco/pvx/internal/toolchain"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	err := runCLI(os.Args)
	if err == nil {
		return
	}
	if !isReported(err) {
		printer.PrintError(err.Error())
	}
	os.Exit(exitCode(err))
}

// runCLI builds the root command and runs it with args. Interrupts cancel
// the context so delegated tools are stopped with the invocation.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New(&clix.App{}).Run(ctx, args)
}

// isReported is true for failures of processes that wrote straight to the
// terminal, such as a script started by `pvx run`.
func isReported(err error) bool {
	var cmdErr *toolchain.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Interactive
}

// exitCode propagates the exit status of delegated tools and falls back to 1.
func exitCode(err error) int {
	var cmdErr *toolchain.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	var exitErr urfavecli.ExitCoder
	if errors.As(err, &exitErr) && exitErr.ExitCode() != 0 {
		return exitErr.ExitCode()
	}
	return 1
}
