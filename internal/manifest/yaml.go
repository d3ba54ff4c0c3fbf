package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// yamlCodec handles Helm Chart.yaml files. Chart dependencies are a list of
// {name, version, repository} entries; charts have no development section.
type yamlCodec struct{}

func (yamlCodec) Decode(data []byte) (*PackageRecord, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return nil, errors.New("document is empty")
	}

	name, err := yamlString(doc, "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New(`field "name" is empty`)
	}
	version, err := yamlString(doc, "version")
	if err != nil {
		return nil, err
	}

	rec := &PackageRecord{Name: name, Version: version}

	raw, ok := doc["dependencies"]
	if !ok || raw == nil {
		return rec, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.New(`field "dependencies" is not a list`)
	}

	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("dependencies[%d] is not a mapping", i)
		}
		depName, err := yamlString(entry, "name")
		if err != nil {
			return nil, fmt.Errorf("dependencies[%d]: %w", i, err)
		}
		depVersion, err := yamlString(entry, "version")
		if err != nil {
			return nil, fmt.Errorf("dependencies[%d]: %w", i, err)
		}
		rec.Dependencies = append(rec.Dependencies, Dependency{Name: depName, Version: depVersion})
	}

	return rec, nil
}

func (c yamlCodec) Encode(original []byte, rec *PackageRecord) ([]byte, error) {
	orig, err := c.Decode(original)
	if err != nil {
		return nil, err
	}
	if err := checkEncodable(orig, rec); err != nil {
		return nil, err
	}

	file, err := parser.ParseBytes(original, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if orig.Version != rec.Version {
		if err := replaceYAMLScalar(file, "$.version", rec.Version); err != nil {
			return nil, err
		}
	}
	for _, i := range changedIndexes(orig.Dependencies, rec.Dependencies) {
		path := fmt.Sprintf("$.dependencies[%d].version", i)
		if err := replaceYAMLScalar(file, path, rec.Dependencies[i].Version); err != nil {
			return nil, err
		}
	}

	out := file.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}

// replaceYAMLScalar swaps the node at path for a string scalar. The value
// goes through yaml.Marshal so versions like "1.0" stay strings.
func replaceYAMLScalar(file *ast.File, path, value string) error {
	p, err := yaml.PathString(path)
	if err != nil {
		return fmt.Errorf("invalid YAML path %q: %w", path, err)
	}

	encoded, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", value, err)
	}

	if err := p.ReplaceWithReader(file, strings.NewReader(string(encoded))); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// yamlString reads a required string field from a decoded mapping.
func yamlString(m map[string]any, field string) (string, error) {
	value, ok := m[field]
	if !ok || value == nil {
		return "", fmt.Errorf("missing %q field", field)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return s, nil
}
