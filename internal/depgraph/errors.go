package depgraph

import (
	"fmt"
	"strings"
)

// DuplicateNameError indicates that two manifests declare the same package
// name. The graph cannot pick an authoritative version, so the run aborts.
type DuplicateNameError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate package name %q declared by %s and %s", e.Name, e.First, e.Second)
}

// Suggestion returns guidance on resolving the duplicate.
func (e *DuplicateNameError) Suggestion() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Package %q is declared twice:\n", e.Name)
	fmt.Fprintf(&sb, "  - %s\n", e.First)
	fmt.Fprintf(&sb, "  - %s\n\n", e.Second)
	sb.WriteString("Rename one of the packages, or exclude the copy you do not own\n")
	sb.WriteString("with an 'exclude' pattern in .depsync.yaml.\n")

	return sb.String()
}

// StaleViolationError indicates that a violation no longer matches the
// graph it is applied to.
type StaleViolationError struct {
	Violation Violation
	Reason    string
}

func (e *StaleViolationError) Error() string {
	v := e.Violation
	return fmt.Sprintf("cannot fix %s (%s): %s: %s", v.Owner, v.Kind, v.Dependency, e.Reason)
}
