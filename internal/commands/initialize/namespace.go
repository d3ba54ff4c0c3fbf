package initialize

import (
	"sort"
	"strings"
)

// NamespaceCandidate is a name prefix shared by discovered packages.
type NamespaceCandidate struct {
	// Prefix is "@scope/" for scoped packages or "word-" for a shared
	// leading word.
	Prefix string

	// Packages lists the package names carrying the prefix.
	Packages []string
}

// InferNamespace proposes prefixes that identify the internal packages.
// Every npm scope is a candidate; an unscoped leading word ("swap-" in
// "swap-core") is one only when at least two packages share it.
// Candidates are sorted by package count, then prefix.
func InferNamespace(names []string) []NamespaceCandidate {
	byPrefix := make(map[string][]string)
	for _, name := range names {
		if prefix, ok := namePrefix(name); ok {
			byPrefix[prefix] = append(byPrefix[prefix], name)
		}
	}

	candidates := make([]NamespaceCandidate, 0, len(byPrefix))
	for prefix, pkgs := range byPrefix {
		if !strings.HasPrefix(prefix, "@") && len(pkgs) < 2 {
			continue
		}
		sort.Strings(pkgs)
		candidates = append(candidates, NamespaceCandidate{Prefix: prefix, Packages: pkgs})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Packages) != len(candidates[j].Packages) {
			return len(candidates[i].Packages) > len(candidates[j].Packages)
		}
		return candidates[i].Prefix < candidates[j].Prefix
	})
	return candidates
}

// namePrefix returns "@scope/" for "@scope/pkg" and "word-" for "word-rest".
func namePrefix(name string) (string, bool) {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i > 1 {
			return name[:i+1], true
		}
		return "", false
	}
	if i := strings.IndexAny(name, "-_"); i > 0 {
		return name[:i+1], true
	}
	return "", false
}
