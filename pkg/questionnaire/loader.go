package questionnaire

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a questionnaire definition from JSON or YAML. JSON is tried
// first so error messages from malformed JSON documents stay precise.
func Parse(data []byte) (Questionnaire, error) {
	var q Questionnaire
	if len(data) == 0 {
		return q, fmt.Errorf("questionnaire: definition is empty")
	}

	jsonErr := json.Unmarshal(data, &q)
	if jsonErr == nil {
		return q, validate(q)
	}
	if err := yaml.Unmarshal(data, &q); err != nil {
		return Questionnaire{}, fmt.Errorf("questionnaire: parse definition: %w", jsonErr)
	}
	q = normalizeYAMLProps(q)
	return q, validate(q)
}

// LoadFile reads and parses a definition from disk. The extension only
// affects error reporting; both formats are attempted either way.
func LoadFile(path string) (Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Questionnaire{}, fmt.Errorf("questionnaire: read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// Save serializes the definition to JSON, dropping soft-removed instances.
// This is the moment a canvas removal becomes durable.
func Save(q Questionnaire) ([]byte, error) {
	q.Instances = q.Active()
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("questionnaire: marshal definition: %w", err)
	}
	return data, nil
}

func validate(q Questionnaire) error {
	seen := make(map[string]struct{}, len(q.Instances))
	for _, inst := range q.Instances {
		id := strings.TrimSpace(inst.InstanceID)
		if id == "" {
			return fmt.Errorf("questionnaire: instance with empty id")
		}
		if inst.Type == "" {
			return fmt.Errorf("questionnaire: instance %q has no type", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("questionnaire: duplicate instance id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// normalizeYAMLProps rewrites map[any]any prop values produced by YAML
// decoding into the map[string]any shape the rest of the engine expects.
func normalizeYAMLProps(q Questionnaire) Questionnaire {
	for idx := range q.Instances {
		for key, value := range q.Instances[idx].Props {
			q.Instances[idx].Props[key] = normalizeYAMLValue(value)
		}
	}
	return q
}

func normalizeYAMLValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAMLValue(item)
		}
		return out
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeYAMLValue(item)
		}
		return v
	case []any:
		for idx, item := range v {
			v[idx] = normalizeYAMLValue(item)
		}
		return v
	case int:
		return float64(v)
	default:
		return v
	}
}
