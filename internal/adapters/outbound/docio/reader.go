package docio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arbiterhq/arbiter/internal/domain"
	"gopkg.in/yaml.v3"
)

// Reader implements domain.DocumentReader for JSON and YAML files.
type Reader struct{}

func NewReader() *Reader { return &Reader{} }

// Read decodes the document twice: once into the typed struct the engine
// consumes, once into a generic instance for schema validation. Both come
// from the same bytes so they cannot drift.
func (r *Reader) Read(path string) (domain.Document, any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAML(path, data)
	default:
		return readJSON(path, data)
	}
}

func readJSON(path string, data []byte) (domain.Document, any, error) {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return domain.Document{}, nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return doc, instance, nil
}

func readYAML(path string, data []byte) (domain.Document, any, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return domain.Document{}, nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	instance := toJSONCompatible(generic)

	// Round-trip through JSON so the typed decode follows the same field
	// names as a JSON document.
	encoded, err := json.Marshal(instance)
	if err != nil {
		return domain.Document{}, nil, fmt.Errorf("converting %s: %w", filepath.Base(path), err)
	}
	var doc domain.Document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return domain.Document{}, nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return doc, instance, nil
}

// toJSONCompatible normalizes yaml.v3 output (map[string]any keys, nested
// slices) into the shapes the schema validator expects.
func toJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, inner := range val {
			result[k] = toJSONCompatible(inner)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, inner := range val {
			result[i] = toJSONCompatible(inner)
		}
		return result
	default:
		return val
	}
}
