// Package operations runs the depsync pipelines on top of the dependency
// graph: checking (and optionally fixing) internal versions, and setting a
// new version across every internal package.
package operations
