package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/depsync/internal/cli"
	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

// exitFatal is used for errors that stop a run before a verdict is reached.
const exitFatal = 2

func main() {
	os.Exit(exitCode(runCLI(os.Args)))
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	cfg := config.Default()
	app := cli.New(cfg)
	app.ExitErrHandler = func(context.Context, *urfavecli.Command, error) {}
	return app.Run(context.Background(), args)
}

// suggester is implemented by errors that carry a remediation hint.
type suggester interface {
	Suggestion() string
}

// exitCode reports err and maps it to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr urfavecli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			printer.PrintError(msg)
		}
		return exitErr.ExitCode()
	}

	printer.PrintError(fmt.Sprintf("Error: %v", err))
	var s suggester
	if errors.As(err, &s) {
		if hint := s.Suggestion(); hint != "" {
			printer.PrintFaint(hint)
		}
	}
	return exitFatal
}
