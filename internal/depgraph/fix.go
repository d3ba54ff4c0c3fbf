package depgraph

import (
	"context"
	"log/slog"

	"github.com/indaco/depsync/internal/manifest"
)

// FixResult summarizes a fix run.
type FixResult struct {
	// Applied is the number of violations written to the graph.
	Applied int

	// Updated lists the packages whose manifests were saved, in the order
	// they were first touched.
	Updated []string
}

// ApplyFixes sets every violating declaration in g to its expected version
// and returns the owners it touched in first-touch order. All violations
// are validated before any change is made, so a stale violation leaves g
// untouched.
func ApplyFixes(g *Graph, violations []Violation) ([]string, error) {
	for _, v := range violations {
		owner, ok := g.Get(v.Owner)
		if !ok {
			return nil, &StaleViolationError{Violation: v, Reason: "owner is not in the graph"}
		}
		if _, ok := owner.Declared(v.Kind, v.Dependency); !ok {
			return nil, &StaleViolationError{Violation: v, Reason: "dependency is not declared"}
		}
	}

	var touched []string
	seen := make(map[string]bool)
	for _, v := range violations {
		owner, _ := g.Get(v.Owner)
		owner.SetDependencyVersion(v.Kind, v.Dependency, v.Expected)
		if !seen[v.Owner] {
			seen[v.Owner] = true
			touched = append(touched, v.Owner)
		}
	}

	return touched, nil
}

// Fix applies violations to g and saves every touched package through
// store. The first save failure stops the run; manifests saved before it
// keep their new content.
func Fix(ctx context.Context, g *Graph, violations []Violation, store manifest.Store) (*FixResult, error) {
	touched, err := ApplyFixes(g, violations)
	if err != nil {
		return nil, err
	}

	result := &FixResult{Applied: len(violations)}
	for _, name := range touched {
		rec, _ := g.Get(name)
		if err := store.Save(ctx, rec.Origin, rec); err != nil {
			return result, err
		}
		result.Updated = append(result.Updated, name)
		slog.Debug("fixed manifest", "package", name, "path", rec.Origin.Path)
	}

	return result, nil
}
