package depgraph

import (
	"github.com/indaco/depsync/internal/manifest"
)

// Status is the outcome of checking one declaration.
type Status string

const (
	StatusMatch    Status = "match"
	StatusMismatch Status = "mismatch"
	StatusMissing  Status = "missing"
)

// Violation is a declared dependency version that differs from the
// authoritative version of the internal package it names.
type Violation struct {
	Owner      string        `json:"owner"`
	Kind       manifest.Kind `json:"kind"`
	Dependency string        `json:"dependency"`
	Declared   string        `json:"declared"`
	Expected   string        `json:"expected"`
}

// MissingReference is an internal-looking dependency that no manifest in
// the graph provides.
type MissingReference struct {
	Owner      string        `json:"owner"`
	Kind       manifest.Kind `json:"kind"`
	Dependency string        `json:"dependency"`
	Declared   string        `json:"declared"`
}

// Check records one internal declaration that was examined.
// Expected is empty for missing references.
type Check struct {
	Owner      string        `json:"owner"`
	Kind       manifest.Kind `json:"kind"`
	Dependency string        `json:"dependency"`
	Declared   string        `json:"declared"`
	Expected   string        `json:"expected,omitempty"`
	Status     Status        `json:"status"`
}

// Report is the result of a scan. All slices follow scan order.
type Report struct {
	Checks     []Check
	Violations []Violation
	Missing    []MissingReference
}

// HasViolations reports whether any declaration disagrees with its
// authoritative version.
func (r *Report) HasViolations() bool {
	return len(r.Violations) > 0
}

// Count returns how many checks ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == s {
			n++
		}
	}
	return n
}

// Scan checks every internal dependency declaration in g. Packages are
// visited in insertion order, kinds in manifest.Kinds order and
// dependencies in declared order, so identical graphs yield identical
// reports. Names rejected by match are skipped. Scan never modifies g.
func Scan(g *Graph, match Predicate) *Report {
	report := &Report{}
	if match == nil {
		return report
	}

	for _, pkg := range g.Packages() {
		for _, kind := range manifest.Kinds() {
			for _, dep := range pkg.Deps(kind) {
				if !match(dep.Name) {
					continue
				}

				check := Check{
					Owner:      pkg.Name,
					Kind:       kind,
					Dependency: dep.Name,
					Declared:   dep.Version,
				}

				expected, ok := g.Version(dep.Name)
				switch {
				case !ok:
					check.Status = StatusMissing
					report.Missing = append(report.Missing, MissingReference{
						Owner:      pkg.Name,
						Kind:       kind,
						Dependency: dep.Name,
						Declared:   dep.Version,
					})
				case dep.Version == expected:
					check.Expected = expected
					check.Status = StatusMatch
				default:
					check.Expected = expected
					check.Status = StatusMismatch
					report.Violations = append(report.Violations, Violation{
						Owner:      pkg.Name,
						Kind:       kind,
						Dependency: dep.Name,
						Declared:   dep.Version,
						Expected:   expected,
					})
				}

				report.Checks = append(report.Checks, check)
			}
		}
	}

	return report
}
