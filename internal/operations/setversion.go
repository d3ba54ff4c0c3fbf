package operations

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/manifest"
	"github.com/indaco/depsync/internal/semver"
)

// SetOptions configures a set run.
type SetOptions struct {
	// Target is an explicit version ("4.2.0") or a bump label
	// ("patch", "minor", "major") applied to the highest current version.
	Target string

	// Exclude lists packages to leave alone, by package name, unscoped
	// name or directory name.
	Exclude []string
}

// SetResult is the result of a set run.
type SetResult struct {
	// Version is the version that was applied.
	Version string

	// Updated lists the packages whose manifests changed.
	Updated []string

	// Skipped lists the excluded packages.
	Skipped []string
}

// SetVersionOperation moves every internal package to one version and
// points all internal dependencies on them at it.
type SetVersionOperation struct {
	store manifest.Store
	roots []string
	match depgraph.Predicate
	opts  SetOptions
}

// NewSetVersionOperation creates a set run over the manifests store finds
// below roots.
func NewSetVersionOperation(store manifest.Store, roots []string, match depgraph.Predicate, opts SetOptions) *SetVersionOperation {
	return &SetVersionOperation{
		store: store,
		roots: roots,
		match: match,
		opts:  opts,
	}
}

// Execute applies the version and saves every changed manifest. The first
// save failure stops the run.
func (op *SetVersionOperation) Execute(ctx context.Context) (*SetResult, error) {
	g, err := depgraph.Load(ctx, op.store, op.roots)
	if err != nil {
		return nil, err
	}

	included := make(map[string]bool, g.Len())
	result := &SetResult{}
	for _, rec := range g.Packages() {
		if op.excluded(rec) {
			result.Skipped = append(result.Skipped, rec.Name)
			continue
		}
		included[rec.Name] = true
	}

	version, err := op.resolveVersion(g, included)
	if err != nil {
		return nil, err
	}
	result.Version = version

	for _, rec := range g.Packages() {
		if !included[rec.Name] {
			continue
		}

		changed := rec.Version != version
		rec.Version = version

		for _, kind := range manifest.Kinds() {
			for _, dep := range rec.Deps(kind) {
				if !included[dep.Name] || dep.Version == version {
					continue
				}
				if op.match != nil && !op.match(dep.Name) {
					continue
				}
				rec.SetDependencyVersion(kind, dep.Name, version)
				changed = true
			}
		}

		if !changed {
			continue
		}
		if err := op.store.Save(ctx, rec.Origin, rec); err != nil {
			return result, err
		}
		result.Updated = append(result.Updated, rec.Name)
		slog.Debug("set version", "package", rec.Name, "version", version)
	}

	return result, nil
}

// resolveVersion turns the target into a concrete version.
func (op *SetVersionOperation) resolveVersion(g *depgraph.Graph, included map[string]bool) (string, error) {
	target := strings.TrimSpace(op.opts.Target)
	if target == "" {
		return "", fmt.Errorf("a version or bump label is required")
	}

	if !semver.IsBumpLabel(target) {
		if _, err := semver.Parse(target); err != nil {
			return "", fmt.Errorf("invalid version %q: %w", target, err)
		}
		return target, nil
	}

	var highest *semver.Version
	for _, rec := range g.Packages() {
		if !included[rec.Name] {
			continue
		}
		v, err := semver.Parse(rec.Version)
		if err != nil {
			slog.Debug("ignoring unparsable version", "package", rec.Name, "version", rec.Version)
			continue
		}
		if highest == nil || v.Compare(*highest) > 0 {
			highest = &v
		}
	}
	if highest == nil {
		return "", fmt.Errorf("no package has a semantic version to bump")
	}

	next, err := highest.Bump(target)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// excluded reports whether rec matches an exclude entry by package name,
// unscoped name ("@scope/pkg" -> "pkg") or directory name.
func (op *SetVersionOperation) excluded(rec *manifest.PackageRecord) bool {
	unscoped := rec.Name
	if i := strings.LastIndex(unscoped, "/"); i >= 0 {
		unscoped = unscoped[i+1:]
	}
	return slices.Contains(op.opts.Exclude, rec.Name) ||
		slices.Contains(op.opts.Exclude, unscoped) ||
		slices.Contains(op.opts.Exclude, rec.Origin.Dir())
}

// Name returns the name of this operation.
func (op *SetVersionOperation) Name() string {
	return fmt.Sprintf("set %s", op.opts.Target)
}
