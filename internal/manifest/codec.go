package manifest

import (
	"fmt"
)

// Codec converts manifest bytes to records and back.
type Codec interface {
	// Decode parses a manifest. Dependencies keep their declared order.
	Decode(data []byte) (*PackageRecord, error)

	// Encode returns original with the package version and dependency
	// versions of rec applied. All other content is preserved as far as
	// the format allows.
	Encode(original []byte, rec *PackageRecord) ([]byte, error)
}

// CodecFor returns the codec for a manifest format.
func CodecFor(format Format) (Codec, error) {
	switch format {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
}

// checkEncodable verifies that rec can be written over orig: same package
// and the same dependency layout.
func checkEncodable(orig, rec *PackageRecord) error {
	if orig.Name != rec.Name {
		return fmt.Errorf("package name changed from %q to %q", orig.Name, rec.Name)
	}
	for _, kind := range Kinds() {
		before, after := orig.Deps(kind), rec.Deps(kind)
		if len(before) != len(after) {
			return fmt.Errorf("%s changed on disk: %d declared, %d in memory", kind, len(before), len(after))
		}
		for i := range before {
			if before[i].Name != after[i].Name {
				return fmt.Errorf("%s changed on disk: %q declared where %q was expected", kind, before[i].Name, after[i].Name)
			}
		}
	}
	return nil
}

// changedIndexes returns the positions whose version differs.
// Both slices must share the same layout (see checkEncodable).
func changedIndexes(before, after []Dependency) []int {
	var idx []int
	for i := range before {
		if before[i].Version != after[i].Version {
			idx = append(idx, i)
		}
	}
	return idx
}
