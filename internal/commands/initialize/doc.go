// Package initialize provides the "depsync init" command, which writes a
// commented .depsync.yaml with the namespace inferred from the packages
// found under the configured roots.
package initialize
