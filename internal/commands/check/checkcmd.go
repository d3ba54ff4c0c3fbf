package check

import (
	"context"
	"fmt"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/operations"
	"github.com/indaco/depsync/internal/printer"
	"github.com/urfave/cli/v3"
)

// newFileSystem is swapped in tests.
var newFileSystem = func() core.FileSystem {
	return core.NewOSFileSystem()
}

// Run returns the "check" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify internal dependency versions",
		UsageText: `depsync check [options]

Loads every manifest under the configured roots and compares each internal
dependency declaration with the version of the package it names.

Exit status:
  0  all internal dependencies are consistent (or were fixed)
  1  violations remain
  2  a manifest could not be read, parsed or written`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Rewrite manifests to the authoritative versions",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only show summary",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, cmd, cfg)
		},
	}
}

// runCheckCmd executes the check command.
func runCheckCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	format := printer.ParseOutputFormat(cmd.String("format"))
	fix := cmd.Bool("fix")

	ns := cfg.InternalNamespace()
	if ns.IsEmpty() && format == printer.FormatText {
		printer.PrintWarning("No namespace keywords or prefixes configured, no dependency will be checked.")
	}

	op := operations.NewCheckOperation(
		cfg.NewStore(newFileSystem()),
		cfg.RootPaths(),
		ns.Predicate(),
		operations.CheckOptions{
			Fix:           fix,
			FailOnMissing: cfg.Policy.FailOnMissing,
		},
	)

	outcome, err := op.Execute(ctx)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op.Name(), err)
	}

	formatter := NewFormatter(format)
	if cmd.Bool("quiet") && format != printer.FormatJSON {
		fmt.Println(formatter.FormatSummary(outcome))
	} else {
		fmt.Print(formatter.FormatOutcome(outcome))
	}

	if code := outcome.ExitCode(); code != operations.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}
