package answers

import (
	"time"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

const (
	dateOnlyLayout  = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Normalizer converts raw collector state into wire-format answer entries.
// Classification comes from the registry's value-kind per type.
type Normalizer struct {
	registry *material.Registry
}

// NewNormalizer wires a normalizer to a registry. A nil registry falls back
// to the built-in defaults.
func NewNormalizer(registry *material.Registry) *Normalizer {
	if registry == nil {
		registry = material.NewDefaultRegistry()
	}
	return &Normalizer{registry: registry}
}

// Normalize produces one entry per visible interactive instance, in canvas
// order. Instances whose type is not registered are skipped, mirroring the
// dispatcher's not-found behavior. The raw value map is never mutated.
func (n *Normalizer) Normalize(q questionnaire.Questionnaire, values map[string]any) []AnswerEntry {
	entries := make([]AnswerEntry, 0, len(q.Instances))
	for _, inst := range q.Active() {
		if !inst.Visible {
			continue
		}
		desc, ok := n.registry.Lookup(inst.Type)
		if !ok || !desc.Interactive {
			continue
		}
		raw, present := values[inst.InstanceID]
		entries = append(entries, AnswerEntry{
			InstanceID: inst.InstanceID,
			Type:       inst.Type,
			Value:      normalizeValue(desc.Kind, raw, present),
		})
	}
	return entries
}

// normalizeValue applies the coercion rules in strict precedence order. The
// rules are ordered so that re-applying them to already-normalized values is
// a no-op.
func normalizeValue(kind material.ValueKind, raw any, present bool) any {
	// Absent or empty-string answers collapse to null.
	if !present || raw == "" {
		return nil
	}

	// Multi-select answers keep their array shape, including empty: an
	// explicit "selected nothing" stays distinguishable from "never seen".
	if kind == material.ValueMulti {
		if list, ok := asSlice(raw); ok {
			return list
		}
	}

	if kind == material.ValueDate {
		if list, ok := asSlice(raw); ok && len(list) == 2 {
			if start, okStart := dateOnly(list[0]); okStart {
				if end, okEnd := dateOnly(list[1]); okEnd {
					return []any{start, end}
				}
			}
		}
		if t, ok := raw.(time.Time); ok {
			return t.Format(timestampLayout)
		}
		// Already text, or some shape the serializer does not recognize.
		return raw
	}

	return raw
}

// asSlice widens the slice shapes widgets and decoded JSON produce.
func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// dateOnly serializes one range endpoint to a date-only string. Strings that
// already carry a recognizable date reserialize to their date part, which
// keeps range normalization idempotent.
func dateOnly(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(dateOnlyLayout), true
	case string:
		for _, layout := range []string{dateOnlyLayout, timestampLayout, time.RFC3339} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Format(dateOnlyLayout), true
			}
		}
		return v, true
	default:
		return "", false
	}
}
