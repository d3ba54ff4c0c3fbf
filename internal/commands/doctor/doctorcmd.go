// Package doctor provides the "depsync doctor" command, which validates the
// configuration and checks that the workspace can be loaded.
package doctor

import (
	"context"
	"fmt"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/printer"
	"github.com/urfave/cli/v3"
)

// newFileSystem is swapped in tests.
var newFileSystem = func() core.FileSystem {
	return core.NewOSFileSystem()
}

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"validate"},
		Usage:   "Validate the configuration and workspace",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only show problems and the summary",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, cfg)
		},
	}
}

// runDoctorCmd validates cfg, then loads the workspace when the
// configuration has no errors.
func runDoctorCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := newFileSystem()

	results, err := config.NewValidator(fs, cfg).Validate(ctx)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !config.HasErrors(results) {
		results = append(results, checkWorkspace(ctx, fs, cfg))
	}

	printResults(results, cmd.Bool("quiet"))

	if config.HasErrors(results) {
		return cli.Exit("", 1)
	}
	return nil
}

// checkWorkspace loads every manifest under the configured roots.
func checkWorkspace(ctx context.Context, fs core.FileSystem, cfg *config.Config) config.ValidationResult {
	g, err := depgraph.Load(ctx, cfg.NewStore(fs), cfg.RootPaths())
	if err != nil {
		return config.ValidationResult{Category: "Workspace", Passed: false, Message: err.Error()}
	}
	if g.Len() == 0 {
		return config.ValidationResult{
			Category: "Workspace",
			Passed:   true,
			Message:  "No manifests found under the configured roots",
			Warning:  true,
		}
	}
	return config.ValidationResult{
		Category: "Workspace",
		Passed:   true,
		Message:  fmt.Sprintf("Loaded %d package(s)", g.Len()),
	}
}

func printResults(results []config.ValidationResult, quiet bool) {
	for _, r := range results {
		var symbol string
		switch {
		case !r.Passed:
			symbol = printer.Error(printer.MarkFail)
		case r.Warning:
			symbol = printer.Warning(printer.MarkWarn)
		default:
			if quiet {
				continue
			}
			symbol = printer.Success(printer.MarkOK)
		}
		fmt.Printf("%s %s %s\n", symbol, printer.Bold(r.Category+":"), r.Message)
	}

	fmt.Println()
	errs, warnings := config.ErrorCount(results), config.WarningCount(results)
	switch {
	case errs > 0:
		printer.PrintError(fmt.Sprintf("Found %d error(s), %d warning(s)", errs, warnings))
	case warnings > 0:
		printer.PrintWarning(fmt.Sprintf("Configuration is valid with %d warning(s)", warnings))
	default:
		printer.PrintSuccess("Configuration is valid")
	}
}
