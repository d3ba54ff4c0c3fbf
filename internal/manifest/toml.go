package manifest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// tomlSections maps dependency kinds to Cargo.toml tables.
var tomlSections = map[Kind]string{
	KindDependencies:    "dependencies",
	KindDevDependencies: "dev-dependencies",
}

// tomlCodec handles Cargo.toml. Values come from a regular decode; the
// declared key order comes from the unstable parser because decoded maps
// lose it. Writes re-serialize the whole document.
type tomlCodec struct{}

func (tomlCodec) Decode(data []byte) (*PackageRecord, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	pkg, ok := doc["package"].(map[string]any)
	if !ok {
		return nil, errors.New("missing [package] table")
	}

	name, ok := pkg["name"].(string)
	if !ok || name == "" {
		return nil, errors.New(`field "package.name" is missing or not a string`)
	}
	version, ok := pkg["version"].(string)
	if !ok {
		return nil, errors.New(`field "package.version" is missing or not a string`)
	}

	rec := &PackageRecord{Name: name, Version: version}

	var err error
	if rec.Dependencies, err = tomlDeps(data, doc, tomlSections[KindDependencies]); err != nil {
		return nil, err
	}
	if rec.DevDependencies, err = tomlDeps(data, doc, tomlSections[KindDevDependencies]); err != nil {
		return nil, err
	}

	return rec, nil
}

func (c tomlCodec) Encode(original []byte, rec *PackageRecord) ([]byte, error) {
	orig, err := c.Decode(original)
	if err != nil {
		return nil, err
	}
	if err := checkEncodable(orig, rec); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := toml.Unmarshal(original, &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	if orig.Version != rec.Version {
		doc["package"].(map[string]any)["version"] = rec.Version
	}

	for _, kind := range Kinds() {
		after := rec.Deps(kind)
		changed := changedIndexes(orig.Deps(kind), after)
		if len(changed) == 0 {
			continue
		}
		table := doc[tomlSections[kind]].(map[string]any)
		for _, i := range changed {
			switch v := table[after[i].Name].(type) {
			case string:
				table[after[i].Name] = after[i].Version
			case map[string]any:
				v["version"] = after[i].Version
			}
		}
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return out, nil
}

// tomlDeps reads a dependency table. Entries are either a version string or
// a table with a "version" key; path- or git-only entries carry no version
// and are skipped.
func tomlDeps(data []byte, doc map[string]any, table string) ([]Dependency, error) {
	raw, ok := doc[table]
	if !ok {
		return nil, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q is not a table", table)
	}

	var deps []Dependency
	for _, name := range orderedKeys(section, tomlKeyOrder(data, table)) {
		switch v := section[name].(type) {
		case string:
			deps = append(deps, Dependency{Name: name, Version: v})
		case map[string]any:
			if version, ok := v["version"].(string); ok {
				deps = append(deps, Dependency{Name: name, Version: version})
			}
		default:
			return nil, fmt.Errorf("%s entry %q is neither a string nor a table", table, name)
		}
	}

	return deps, nil
}

// tomlKeyOrder lists the keys of table in the order the document declares
// them, covering both "[table]" bodies and "[table.key]" headers.
func tomlKeyOrder(data []byte, table string) []string {
	var p unstable.Parser
	p.Reset(data)

	var current []string
	var keys []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			current = keyParts(expr.Key())
			if len(current) >= 2 && current[0] == table {
				keys = append(keys, current[1])
			}
		case unstable.KeyValue:
			full := append(append([]string(nil), current...), keyParts(expr.Key())...)
			if len(full) >= 2 && full[0] == table {
				keys = append(keys, full[1])
			}
		}
	}

	return keys
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// orderedKeys returns the keys of m following order first, then any
// remaining keys sorted.
func orderedKeys(m map[string]any, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}
