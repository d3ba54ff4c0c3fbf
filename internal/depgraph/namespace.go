package depgraph

import (
	"slices"
	"strings"
)

// Predicate reports whether a dependency name belongs to the internal
// namespace and must be checked.
type Predicate func(name string) bool

// Namespace describes which package names are internal.
type Namespace struct {
	// Keywords match anywhere in the name.
	Keywords []string

	// Prefixes match the start of the name (e.g. "@airswap/").
	Prefixes []string

	// Exclude lists names that are never checked.
	Exclude []string
}

// IsEmpty reports whether the namespace can match anything.
func (n Namespace) IsEmpty() bool {
	return len(n.Keywords) == 0 && len(n.Prefixes) == 0
}

// Matches reports whether name is internal.
func (n Namespace) Matches(name string) bool {
	if name == "" || slices.Contains(n.Exclude, name) {
		return false
	}
	for _, kw := range n.Keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	for _, prefix := range n.Prefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Predicate returns Matches as a Predicate.
func (n Namespace) Predicate() Predicate {
	return n.Matches
}

// Keywords returns a predicate matching names that contain any keyword.
func Keywords(keywords ...string) Predicate {
	return Namespace{Keywords: keywords}.Predicate()
}
