// Package list provides the "depsync list" command, which prints the
// discovered internal packages and how the rest of the workspace depends
// on them.
package list
