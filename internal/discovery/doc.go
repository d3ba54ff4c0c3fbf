// Package discovery walks the configured source roots of a repository and
// finds package manifest files. Vendored trees (node_modules, vendor, ...),
// hidden directories and user-excluded paths are never entered. Results are
// returned in a stable order: roots as configured, entries sorted by name.
package discovery
