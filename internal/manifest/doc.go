// Package manifest reads and rewrites package manifests (package.json,
// Chart.yaml, Cargo.toml) and exposes them to the dependency graph through
// the Store interface.
//
// Decoding keeps dependencies in the order the manifest declares them.
// Encoding only touches the values that changed: JSON documents are patched
// in place, YAML documents are patched through their AST, and TOML documents
// are re-serialized canonically.
package manifest
