package manifest

import (
	"fmt"
	"strings"
)

// MalformedManifestError indicates that a manifest could not be parsed into
// a PackageRecord. It is fatal: no partial graph is built.
type MalformedManifestError struct {
	Path string
	Err  error
}

func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedManifestError) Unwrap() error {
	return e.Err
}

// Suggestion returns guidance on fixing the manifest.
func (e *MalformedManifestError) Suggestion() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Could not parse %s\n\n", e.Path)
	sb.WriteString("Every manifest must provide:\n")
	sb.WriteString("  - name: the published package name (string)\n")
	sb.WriteString("  - version: the package version (string)\n")
	sb.WriteString("  - dependencies / devDependencies: maps of name to version string\n\n")
	sb.WriteString("Fix the file or exclude its directory in .depsync.yaml.\n")

	return sb.String()
}

// WriteError indicates that a manifest could not be rewritten.
// The original file is left untouched.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
