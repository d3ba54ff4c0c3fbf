// Package check provides the "depsync check" command, which verifies that
// every internal dependency declares the version of the package it names
// and, with --fix, rewrites the manifests that do not.
package check
