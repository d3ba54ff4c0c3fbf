package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonSections maps dependency kinds to package.json fields.
var jsonSections = map[Kind]string{
	KindDependencies:    "dependencies",
	KindDevDependencies: "devDependencies",
}

// jsonCodec handles package.json. Reads walk the document with gjson so key
// order is kept; writes patch single values with sjson so every other byte
// stays as it was.
type jsonCodec struct{}

func (jsonCodec) Decode(data []byte) (*PackageRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top-level value is not an object")
	}

	name, err := jsonString(root, "name")
	if err != nil {
		return nil, err
	}
	version, err := jsonString(root, "version")
	if err != nil {
		return nil, err
	}

	rec := &PackageRecord{Name: name, Version: version}
	if rec.Dependencies, err = jsonDeps(root, jsonSections[KindDependencies]); err != nil {
		return nil, err
	}
	if rec.DevDependencies, err = jsonDeps(root, jsonSections[KindDevDependencies]); err != nil {
		return nil, err
	}

	return rec, nil
}

func (c jsonCodec) Encode(original []byte, rec *PackageRecord) ([]byte, error) {
	orig, err := c.Decode(original)
	if err != nil {
		return nil, err
	}
	if err := checkEncodable(orig, rec); err != nil {
		return nil, err
	}

	out := original
	if orig.Version != rec.Version {
		if out, err = sjson.SetBytes(out, "version", rec.Version); err != nil {
			return nil, fmt.Errorf("failed to set version: %w", err)
		}
	}

	for _, kind := range Kinds() {
		after := rec.Deps(kind)
		for _, i := range changedIndexes(orig.Deps(kind), after) {
			path := jsonSections[kind] + "." + escapeJSONKey(after[i].Name)
			if out, err = sjson.SetBytes(out, path, after[i].Version); err != nil {
				return nil, fmt.Errorf("failed to set %s %q: %w", kind, after[i].Name, err)
			}
		}
	}

	return out, nil
}

// jsonString reads a required top-level string field.
func jsonString(root gjson.Result, field string) (string, error) {
	value := root.Get(field)
	if !value.Exists() {
		return "", fmt.Errorf("missing %q field", field)
	}
	if value.Type != gjson.String {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	if value.String() == "" && field == "name" {
		return "", fmt.Errorf("field %q is empty", field)
	}
	return value.String(), nil
}

// jsonDeps reads a dependency object in declared order. A missing or null
// section yields no dependencies.
func jsonDeps(root gjson.Result, field string) ([]Dependency, error) {
	section := root.Get(field)
	if !section.Exists() || section.Type == gjson.Null {
		return nil, nil
	}
	if !section.IsObject() {
		return nil, fmt.Errorf("field %q is not an object", field)
	}

	var deps []Dependency
	var err error
	section.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("%s entry %q is not a string", field, key.String())
			return false
		}
		deps = append(deps, Dependency{Name: key.String(), Version: value.String()})
		return true
	})

	return deps, err
}

// escapeJSONKey escapes the characters sjson treats as path syntax, so
// scoped names like "@scope/pkg" or "lodash.merge" address a single key.
func escapeJSONKey(key string) string {
	var sb strings.Builder
	sb.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '\\', '.', '*', '?', '|', '#', '@', ':', '!', '=', '<', '>', '%':
			sb.WriteByte('\\')
		}
		sb.WriteByte(key[i])
	}
	return sb.String()
}
