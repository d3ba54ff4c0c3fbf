package depgraph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/indaco/depsync/internal/manifest"
)

// Graph holds one record per internal package, keyed by the package name
// its manifest declares. Iteration follows insertion order.
type Graph struct {
	order   []string
	records map[string]*manifest.PackageRecord
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{records: make(map[string]*manifest.PackageRecord)}
}

// Add inserts rec under rec.Name. A name that is already present yields a
// *DuplicateNameError and leaves the graph unchanged.
func (g *Graph) Add(rec *manifest.PackageRecord) error {
	if existing, ok := g.records[rec.Name]; ok {
		return &DuplicateNameError{
			Name:   rec.Name,
			First:  existing.Origin.Path,
			Second: rec.Origin.Path,
		}
	}
	g.order = append(g.order, rec.Name)
	g.records[rec.Name] = rec
	return nil
}

// Get returns the record for name.
func (g *Graph) Get(name string) (*manifest.PackageRecord, bool) {
	rec, ok := g.records[name]
	return rec, ok
}

// Version returns the authoritative version of name.
func (g *Graph) Version(name string) (string, bool) {
	rec, ok := g.records[name]
	if !ok {
		return "", false
	}
	return rec.Version, true
}

// Len returns the number of packages.
func (g *Graph) Len() int {
	return len(g.order)
}

// Names returns the package names in insertion order.
func (g *Graph) Names() []string {
	return append([]string(nil), g.order...)
}

// Packages returns the records in insertion order.
func (g *Graph) Packages() []*manifest.PackageRecord {
	out := make([]*manifest.PackageRecord, len(g.order))
	for i, name := range g.order {
		out[i] = g.records[name]
	}
	return out
}

// FromRecords builds a graph from records in the given order.
func FromRecords(records []*manifest.PackageRecord) (*Graph, error) {
	g := New()
	for _, rec := range records {
		if err := g.Add(rec); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Load discovers every manifest under roots, loads them all and builds the
// graph. Any load failure aborts the build; no partial graph is returned.
func Load(ctx context.Context, store manifest.Store, roots []string) (*Graph, error) {
	handles, err := store.Discover(ctx, roots)
	if err != nil {
		return nil, fmt.Errorf("failed to discover manifests: %w", err)
	}

	records := make([]*manifest.PackageRecord, 0, len(handles))
	for _, h := range handles {
		rec, err := store.Load(ctx, h)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	g, err := FromRecords(records)
	if err != nil {
		return nil, err
	}

	slog.Debug("dependency graph built", "packages", g.Len())
	return g, nil
}
