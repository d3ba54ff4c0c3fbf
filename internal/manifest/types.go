package manifest

import (
	"path/filepath"
	"strings"
)

// Format represents a manifest file format.
type Format string

const (
	// FormatJSON is for JSON manifests (package.json).
	FormatJSON Format = "json"

	// FormatYAML is for YAML manifests (Chart.yaml).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML manifests (Cargo.toml).
	FormatTOML Format = "toml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true
	default:
		return false
	}
}

// Kind identifies a dependency section.
type Kind string

const (
	// KindDependencies is the runtime dependency section.
	KindDependencies Kind = "dependencies"

	// KindDevDependencies is the development dependency section.
	KindDevDependencies Kind = "devDependencies"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Kinds returns the dependency kinds in scan order: runtime before development.
func Kinds() []Kind {
	return []Kind{KindDependencies, KindDevDependencies}
}

// Dependency is a single declared dependency.
type Dependency struct {
	Name    string
	Version string
}

// Handle points back to the manifest a record was loaded from.
// Only the Store interprets it.
type Handle struct {
	// Path is the manifest path (root joined with RelPath).
	Path string

	// Root is the configured root the manifest was found under.
	Root string

	// RelPath is the path relative to Root.
	RelPath string

	// Filename is the manifest base name (e.g. "package.json").
	Filename string

	// Format is the manifest format.
	Format Format
}

// Dir returns the name of the directory holding the manifest.
func (h Handle) Dir() string {
	return filepath.Base(filepath.Dir(h.Path))
}

// PackageRecord is the parsed content of a manifest that depsync cares about.
type PackageRecord struct {
	Name            string
	Version         string
	Dependencies    []Dependency
	DevDependencies []Dependency
	Origin          Handle
}

// Deps returns the dependencies of the given kind in declared order.
func (r *PackageRecord) Deps(kind Kind) []Dependency {
	switch kind {
	case KindDependencies:
		return r.Dependencies
	case KindDevDependencies:
		return r.DevDependencies
	default:
		return nil
	}
}

// Declared returns the version declared for name in the given section.
func (r *PackageRecord) Declared(kind Kind, name string) (string, bool) {
	for _, d := range r.Deps(kind) {
		if d.Name == name {
			return d.Version, true
		}
	}
	return "", false
}

// SetDependencyVersion overwrites every declaration of name in the given
// section. It returns false when the section does not declare name.
func (r *PackageRecord) SetDependencyVersion(kind Kind, name, version string) bool {
	deps := r.Deps(kind)
	found := false
	for i := range deps {
		if deps[i].Name == name {
			deps[i].Version = version
			found = true
		}
	}
	return found
}

// Clone returns a deep copy of the record.
func (r *PackageRecord) Clone() *PackageRecord {
	c := *r
	c.Dependencies = append([]Dependency(nil), r.Dependencies...)
	c.DevDependencies = append([]Dependency(nil), r.DevDependencies...)
	return &c
}

// KnownManifest describes a manifest file type depsync can read and write.
type KnownManifest struct {
	// Filename is the expected base name.
	Filename string

	// Format is the file format.
	Format Format

	// Description is a human-readable description.
	Description string
}

// DefaultKnownManifests returns the manifest types depsync supports.
func DefaultKnownManifests() []KnownManifest {
	return []KnownManifest{
		{
			Filename:    "package.json",
			Format:      FormatJSON,
			Description: "Node.js (package.json)",
		},
		{
			Filename:    "Chart.yaml",
			Format:      FormatYAML,
			Description: "Helm (Chart.yaml)",
		},
		{
			Filename:    "Cargo.toml",
			Format:      FormatTOML,
			Description: "Rust (Cargo.toml)",
		},
	}
}

// LookupKnownManifest finds the known manifest type for a file name.
// The lookup ignores case so "chart.yaml" still resolves.
func LookupKnownManifest(filename string) (KnownManifest, bool) {
	base := filepath.Base(filename)
	for _, known := range DefaultKnownManifests() {
		if strings.EqualFold(known.Filename, base) {
			return known, true
		}
	}
	return KnownManifest{}, false
}
