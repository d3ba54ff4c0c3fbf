package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/manifest"
	"github.com/indaco/depsync/internal/printer"
)

// Options configures an init run.
type Options struct {
	// Target is the config file to write.
	Target string

	// Roots are the resolved directories to scan and record.
	Roots []string

	// Keywords, when set, are written as the namespace and skip inference.
	Keywords []string

	// Force overwrites an existing file without asking.
	Force bool
}

// Workflow handles the init workflow.
type Workflow struct {
	prompter    Prompter
	store       manifest.Store
	interactive bool
}

// NewWorkflow creates a new workflow handler. Prompts are only shown when
// interactive is true.
func NewWorkflow(prompter Prompter, store manifest.Store, interactive bool) *Workflow {
	return &Workflow{
		prompter:    prompter,
		store:       store,
		interactive: interactive,
	}
}

// Run writes the config file. It returns false when the user kept an
// existing file.
func (w *Workflow) Run(ctx context.Context, opts Options) (bool, error) {
	if configExists(opts.Target) && !opts.Force {
		if !w.interactive {
			return false, fmt.Errorf("%s already exists, use --force to overwrite it", opts.Target)
		}

		overwrite, err := w.prompter.Confirm(
			fmt.Sprintf("Overwrite %s?", opts.Target),
			"The existing configuration will be replaced.",
		)
		if err != nil {
			return false, err
		}
		if !overwrite {
			printer.PrintFaint("Keeping the existing configuration.")
			return false, nil
		}
	}

	cfg := config.Default()
	cfg.Roots = relativeRoots(opts.Roots, filepath.Dir(opts.Target))

	if len(opts.Keywords) > 0 {
		cfg.Namespace.Keywords = opts.Keywords
	} else {
		names, err := w.discoverNames(ctx, opts.Roots)
		if err != nil {
			return false, err
		}
		if len(names) == 0 {
			printer.PrintWarning("No manifests found under the configured roots.")
		}

		prefixes, err := w.selectPrefixes(InferNamespace(names))
		if err != nil {
			return false, err
		}
		cfg.Namespace.Prefixes = prefixes
	}

	if err := config.SaveConfigFn(cfg, opts.Target); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	printInitSuccess(opts.Target, cfg)
	return true, nil
}

// discoverNames returns the names of the packages below roots. Manifests
// that cannot be loaded are skipped.
func (w *Workflow) discoverNames(ctx context.Context, roots []string) ([]string, error) {
	handles, err := w.store.Discover(ctx, roots)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	names := make([]string, 0, len(handles))
	for _, h := range handles {
		rec, err := w.store.Load(ctx, h)
		if err != nil {
			slog.Debug("skipping manifest", "path", h.Path, "error", err)
			continue
		}
		names = append(names, rec.Name)
	}
	return names, nil
}

// selectPrefixes lets the user pick among the inferred prefixes. All
// candidates are used when prompts are disabled.
func (w *Workflow) selectPrefixes(candidates []NamespaceCandidate) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	options, defaults := buildNamespaceOptions(candidates)
	if !w.interactive {
		return defaults, nil
	}

	return w.prompter.MultiSelect(
		"Select internal namespaces:",
		"Dependencies starting with a selected prefix are checked against the workspace.",
		options,
		defaults,
	)
}

// buildNamespaceOptions creates huh options and default selections from candidates.
func buildNamespaceOptions(candidates []NamespaceCandidate) ([]huh.Option[string], []string) {
	options := make([]huh.Option[string], len(candidates))
	defaults := make([]string, len(candidates))

	for i, c := range candidates {
		label := fmt.Sprintf("%s (%d package(s))", c.Prefix, len(c.Packages))
		options[i] = huh.NewOption(label, c.Prefix)
		defaults[i] = c.Prefix
	}

	return options, defaults
}

// relativeRoots expresses roots relative to dir when they lie below it.
func relativeRoots(roots []string, dir string) []string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return roots
	}

	out := make([]string, len(roots))
	for i, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			out[i] = root
			continue
		}
		rel, err := filepath.Rel(absDir, absRoot)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			out[i] = absRoot
			continue
		}
		out[i] = rel
	}
	return out
}

func configExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// printInitSuccess prints success messages after initialization.
func printInitSuccess(target string, cfg *config.Config) {
	fmt.Println()
	printer.PrintSuccess(fmt.Sprintf("Created %s", target))

	fmt.Println()
	printer.PrintInfo("Roots:")
	for _, r := range cfg.Roots {
		fmt.Printf("  - %s\n", r)
	}

	fmt.Println()
	ns := cfg.InternalNamespace()
	if ns.IsEmpty() {
		printer.PrintWarning("No internal namespace configured. Add keywords or prefixes before running 'depsync check'.")
	} else {
		printer.PrintInfo("Internal namespace:")
		for _, k := range ns.Keywords {
			fmt.Printf("  - keyword: %s\n", k)
		}
		for _, p := range ns.Prefixes {
			fmt.Printf("  - prefix: %s\n", p)
		}
	}

	fmt.Println()
	printer.PrintInfo("Next steps:")
	fmt.Printf("  - Review %s and adjust settings\n", target)
	fmt.Println("  - Run 'depsync list' to review the discovered packages")
	fmt.Println("  - Run 'depsync check' to verify internal dependency versions")
}
