package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"fairweather/internal/types"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// zstdSuffix marks a zstd-compressed catalog document.
const zstdSuffix = ".zst"

// document is the object form of a catalog file:
//
//	activities:
//	  - id: running
//	    ...
//
// A bare top-level list is accepted as well.
type document struct {
	Activities []types.ActivityDefinition `json:"activities" yaml:"activities"`
}

// FormatFromPath infers the format from a file name or object key and
// reports whether the content is zstd-compressed ("catalog.yaml.zst").
// Unknown extensions default to YAML, which also reads JSON.
func FormatFromPath(p string) (Format, bool) {
	name := strings.ToLower(path.Base(p))
	compressed := strings.HasSuffix(name, zstdSuffix)
	name = strings.TrimSuffix(name, zstdSuffix)

	if strings.HasSuffix(name, ".json") {
		return FormatJSON, compressed
	}
	return FormatYAML, compressed
}

// Decode reads activity definitions from r.
func Decode(r io.Reader, f Format) ([]types.ActivityDefinition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCatalog, "catalog document is empty", nil)
	}

	var defs []types.ActivityDefinition
	switch f {
	case FormatJSON:
		defs, err = decodeJSON(data)
	case FormatYAML:
		defs, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("catalog: unsupported format %q", f)
	}
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCatalog, "catalog document could not be decoded", err)
	}
	return defs, nil
}

func decodeJSON(data []byte) ([]types.ActivityDefinition, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var defs []types.ActivityDefinition
		if err := json.Unmarshal(trimmed, &defs); err != nil {
			return nil, err
		}
		return defs, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Activities, nil
}

func decodeYAML(data []byte) ([]types.ActivityDefinition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("expected a YAML document")
	}

	body := root.Content[0]
	switch body.Kind {
	case yaml.SequenceNode:
		var defs []types.ActivityDefinition
		if err := body.Decode(&defs); err != nil {
			return nil, err
		}
		return defs, nil
	case yaml.MappingNode:
		var doc document
		if err := body.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Activities, nil
	default:
		return nil, fmt.Errorf("expected a list of activities or an 'activities' mapping at line %d", body.Line)
	}
}

// decodeBlob decodes a raw catalog payload whose name decides the format and
// compression.
func decodeBlob(name string, r io.Reader) ([]types.ActivityDefinition, error) {
	f, compressed := FormatFromPath(name)
	if !compressed {
		return Decode(r, f)
	}

	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("catalog: creating zstd reader: %w", err)
	}
	defer dec.Close()

	defs, err := Decode(dec, f)
	if err != nil {
		return nil, fmt.Errorf("catalog: decoding %s: %w", name, err)
	}
	return defs, nil
}
