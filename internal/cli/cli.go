package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/indaco/depsync/internal/commands/check"
	"github.com/indaco/depsync/internal/commands/doctor"
	"github.com/indaco/depsync/internal/commands/initialize"
	"github.com/indaco/depsync/internal/commands/list"
	"github.com/indaco/depsync/internal/commands/set"
	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/printer"
	"github.com/indaco/depsync/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the depsync cli.
//
// cfg is filled in by the Before hook once the global flags are parsed, so
// subcommands see the loaded configuration through the same pointer.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "depsync",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Keep internal dependency versions consistent across a multi-package repository",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the configuration file",
				Sources:     urfavecli.EnvVars(config.EnvConfig),
				DefaultText: config.DefaultConfigFile,
			},
			&urfavecli.StringSliceFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to scan for manifests (repeatable, overrides the configured roots)",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug details to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color"))
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			loaded, err := config.LoadConfigFn(cmd.String("config"))
			if err != nil {
				return ctx, err
			}

			if roots := cmd.StringSlice("root"); len(roots) > 0 {
				loaded.Roots, err = absRoots(roots)
				if err != nil {
					return ctx, err
				}
			}

			slog.Debug("configuration loaded", "file", loaded.File, "roots", loaded.Roots)
			*cfg = *loaded
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(cfg),
			check.Run(cfg),
			set.Run(cfg),
			list.Run(cfg),
			doctor.Run(cfg),
		},
	}
}

// absRoots resolves command-line roots against the working directory.
func absRoots(roots []string) ([]string, error) {
	out := make([]string, len(roots))
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("invalid root %q: %w", root, err)
		}
		out[i] = abs
	}
	return out, nil
}
