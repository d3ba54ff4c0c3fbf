// Package set provides the "depsync set" command, which moves every
// internal package and every internal dependency declaration to one
// version.
package set
