// Package semver reads package versions so "depsync set" can bump them.
// Only the major.minor.patch core is interpreted; prerelease tags are kept
// for ordering and dropped by a bump.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned for strings that are not major.minor.patch.
var ErrInvalidVersion = errors.New("invalid version format")

// Bump labels accepted by Bump.
const (
	LabelPatch = "patch"
	LabelMinor = "minor"
	LabelMajor = "major"
)

// Version is a parsed semantic version.
type Version struct {
	Major int
	Minor int
	Patch int

	// Pre is the prerelease tag without the leading "-".
	Pre string

	// Build is the metadata without the leading "+". It never affects ordering.
	Build string
}

// Parse reads "1.2.3", "v1.2.3", "1.2.3-rc.1" or "1.2.3-rc.1+sha".
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	var v Version
	var hasPre, hasBuild bool
	s, v.Build, hasBuild = strings.Cut(s, "+")
	s, v.Pre, hasPre = strings.Cut(s, "-")
	if (hasPre && v.Pre == "") || (hasBuild && v.Build == "") {
		return Version{}, fmt.Errorf("%w: empty prerelease or build tag", ErrInvalidVersion)
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q is not a number", ErrInvalidVersion, parts[i])
		}
		*dst = n
	}

	if err := validIdentifiers(v.Pre); err != nil {
		return Version{}, err
	}
	if err := validIdentifiers(v.Build); err != nil {
		return Version{}, err
	}
	return v, nil
}

func validIdentifiers(s string) error {
	if s == "" {
		return nil
	}
	for _, id := range strings.Split(s, ".") {
		if id == "" {
			return fmt.Errorf("%w: empty identifier in %q", ErrInvalidVersion, s)
		}
		for _, r := range id {
			if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return fmt.Errorf("%w: invalid character %q in %q", ErrInvalidVersion, r, s)
			}
		}
	}
	return nil
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Compare returns -1, 0 or +1 as v orders before, with or after o.
// A prerelease orders before its release (1.0.0-rc.1 < 1.0.0).
func (v Version) Compare(o Version) int {
	for _, c := range [][2]int{{v.Major, o.Major}, {v.Minor, o.Minor}, {v.Patch, o.Patch}} {
		if c[0] != c[1] {
			return cmpInt(c[0], c[1])
		}
	}

	switch {
	case v.Pre == o.Pre:
		return 0
	case v.Pre == "":
		return 1
	case o.Pre == "":
		return -1
	}

	a, b := strings.Split(v.Pre, "."), strings.Split(o.Pre, ".")
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

// IsBumpLabel reports whether s is patch, minor or major.
func IsBumpLabel(s string) bool {
	return s == LabelPatch || s == LabelMinor || s == LabelMajor
}

// Bump returns the next release for label. Prerelease and build tags are
// dropped.
func (v Version) Bump(label string) (Version, error) {
	switch label {
	case LabelPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	case LabelMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case LabelMajor:
		return Version{Major: v.Major + 1}, nil
	default:
		return Version{}, fmt.Errorf("invalid bump label %q (use patch, minor or major)", label)
	}
}

// compareIdentifier orders prerelease identifiers: numbers before words,
// numbers numerically, words by ASCII.
func compareIdentifier(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		return cmpInt(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
