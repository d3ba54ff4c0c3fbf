package initialize

import (
	"context"
	"strings"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/tui"
	"github.com/urfave/cli/v3"
)

// Test seams.
var (
	newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }
	isInteractive = tui.IsInteractive
	newPrompter   = NewPrompter
)

// Run returns the "init" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a .depsync.yaml configuration file",
		UsageText: `depsync init [options]

Scans the configured roots (source and tools by default), proposes the
package scopes it finds as the internal namespace and writes a commented
configuration file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing configuration without asking",
			},
			&cli.StringSliceFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "Namespace keyword to write instead of inferring prefixes",
			},
			&cli.BoolFlag{
				Name:  "no-interactive",
				Usage: "Skip interactive prompts",
			},
			&cli.StringFlag{
				Name:    "theme",
				Usage:   "Prompt theme: " + strings.Join(tui.ThemeNames(), ", "),
				Value:   tui.DefaultTheme,
				Sources: cli.EnvVars("DEPSYNC_THEME"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd, cfg)
		},
	}
}

// runInitCmd executes the init command.
func runInitCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	target := cmd.String("config")
	if target == "" {
		target = config.DefaultConfigFile
	}

	if err := tui.SetTheme(cmd.String("theme")); err != nil {
		return err
	}

	interactive := isInteractive() && !cmd.Bool("no-interactive")
	workflow := NewWorkflow(newPrompter(), cfg.NewStore(newFileSystem()), interactive)

	_, err := workflow.Run(ctx, Options{
		Target:   target,
		Roots:    cfg.RootPaths(),
		Keywords: cmd.StringSlice("keyword"),
		Force:    cmd.Bool("force"),
	})
	return err
}
