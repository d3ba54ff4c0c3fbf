package depgraph

import (
	"sort"

	"github.com/indaco/depsync/internal/manifest"
)

// VersionSummary groups the declarations of one internal package by the
// version they declare.
type VersionSummary struct {
	// Version is the declared version string.
	Version string `json:"version"`

	// Count is how many declarations use this version.
	Count int `json:"count"`

	// Owners lists the declaring packages, sorted.
	Owners []string `json:"owners"`
}

// Usage describes how the rest of the graph depends on one package.
type Usage struct {
	Name          string           `json:"name"`
	Version       string           `json:"version"`
	Path          string           `json:"path"`
	Dependencies  int              `json:"dependencies"`
	DevDependents int              `json:"devDependents"`
	Dependents    int              `json:"dependents"`
	Declared      []VersionSummary `json:"declared,omitempty"`
}

// Consistent reports whether every declaration uses the authoritative
// version.
func (u Usage) Consistent() bool {
	for _, s := range u.Declared {
		if s.Version != u.Version {
			return false
		}
	}
	return true
}

// Usages returns one Usage per package in insertion order. Only
// declarations accepted by match are counted.
func Usages(g *Graph, match Predicate) []Usage {
	type declaration struct {
		owner   string
		version string
	}

	byDep := make(map[string][]declaration)
	devDependents := make(map[string]int)
	for _, pkg := range g.Packages() {
		for _, kind := range manifest.Kinds() {
			for _, dep := range pkg.Deps(kind) {
				if match == nil || !match(dep.Name) {
					continue
				}
				byDep[dep.Name] = append(byDep[dep.Name], declaration{owner: pkg.Name, version: dep.Version})
				if kind == manifest.KindDevDependencies {
					devDependents[dep.Name]++
				}
			}
		}
	}

	usages := make([]Usage, 0, g.Len())
	for _, pkg := range g.Packages() {
		decls := byDep[pkg.Name]

		versionMap := make(map[string][]string)
		for _, d := range decls {
			versionMap[d.version] = append(versionMap[d.version], d.owner)
		}

		summaries := make([]VersionSummary, 0, len(versionMap))
		for v, owners := range versionMap {
			sort.Strings(owners)
			summaries = append(summaries, VersionSummary{
				Version: v,
				Count:   len(owners),
				Owners:  owners,
			})
		}

		// Sort by count (descending), then by version
		sort.Slice(summaries, func(i, j int) bool {
			if summaries[i].Count != summaries[j].Count {
				return summaries[i].Count > summaries[j].Count
			}
			return summaries[i].Version < summaries[j].Version
		})

		usages = append(usages, Usage{
			Name:          pkg.Name,
			Version:       pkg.Version,
			Path:          pkg.Origin.Path,
			Dependencies:  len(pkg.Dependencies) + len(pkg.DevDependencies),
			DevDependents: devDependents[pkg.Name],
			Dependents:    len(decls),
			Declared:      summaries,
		})
	}

	return usages
}
