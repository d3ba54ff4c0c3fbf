package set

import (
	"context"
	"fmt"
	"strings"

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

// Run returns the "set" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Move every internal package to one version",
		ArgsUsage: "<version|patch|minor|major>",
		UsageText: `depsync set <version|patch|minor|major> [options]

Sets the version of every internal package and points every internal
dependency on them at that version. A bump label is applied to the
highest version currently in use.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Leave a package alone (package name, unscoped name or directory)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSetCmd(ctx, cmd, cfg)
		},
	}
}

// runSetCmd executes the set command.
func runSetCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("missing version argument (e.g. 'depsync set 1.2.0' or 'depsync set minor')")
	}

	op := operations.NewSetVersionOperation(
		cfg.NewStore(newFileSystem()),
		cfg.RootPaths(),
		cfg.InternalNamespace().Predicate(),
		operations.SetOptions{
			Target:  cmd.Args().First(),
			Exclude: cmd.StringSlice("exclude"),
		},
	)

	result, err := op.Execute(ctx)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op.Name(), err)
	}

	printSetResult(result)
	return nil
}

// printSetResult reports what a set run changed.
func printSetResult(result *operations.SetResult) {
	if len(result.Updated) == 0 {
		printer.PrintInfo(fmt.Sprintf("All internal packages already use %s", result.Version))
	} else {
		printer.PrintSuccess(fmt.Sprintf("Set %d package(s) to %s", len(result.Updated), result.Version))
		for _, name := range result.Updated {
			fmt.Printf("  - %s\n", name)
		}
	}

	if len(result.Skipped) > 0 {
		printer.PrintFaint(fmt.Sprintf("Skipped: %s", strings.Join(result.Skipped, ", ")))
	}
}
