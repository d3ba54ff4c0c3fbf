package list

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

// Run returns the "list" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List discovered packages and their internal dependents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runListCmd(ctx, cmd, cfg)
		},
	}
}

// runListCmd executes the list command.
func runListCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	g, err := depgraph.Load(ctx, cfg.NewStore(newFileSystem()), cfg.RootPaths())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	usages := depgraph.Usages(g, cfg.InternalNamespace().Predicate())
	formatter := NewFormatter(printer.ParseOutputFormat(cmd.String("format")))
	fmt.Print(formatter.FormatUsages(usages))
	return nil
}
