package material

import (
	"bytes"

	theme "github.com/goliatone/go-theme"
)

// Type identifies a question component type. The set of built-in types is
// closed; callers can extend it by registering additional descriptors before
// the registry is handed to the dispatcher.
type Type string

// Built-in question type identifiers.
const (
	TypeTitle     Type = "question-title"
	TypeParagraph Type = "question-paragraph"
	TypeDivider   Type = "question-divider"

	TypeInput       Type = "question-input"
	TypeTextarea    Type = "question-textarea"
	TypeNumber      Type = "question-number"
	TypeRadio       Type = "question-radio"
	TypeCheckbox    Type = "question-checkbox"
	TypeSelect      Type = "question-select"
	TypeImageChoice Type = "question-image-choice"
	TypeDate        Type = "question-date"
	TypeTime        Type = "question-time"
	TypeRate        Type = "question-rate"
	TypeScore       Type = "question-score"
	TypeNPS         Type = "question-nps"
	TypeMatrix      Type = "question-matrix"
	TypeSignature   Type = "question-signature"
	TypeColor       Type = "question-color"
	TypeEmoji       Type = "question-emoji"
	TypeUpload      Type = "question-upload"
	TypeWordCloud   Type = "question-word-cloud"
)

// Group partitions descriptors for the design-time palette. Grouping is
// purely cosmetic; dispatch never consults it.
type Group string

const (
	GroupTextDisplay Group = "text-display"
	GroupUserInput   Group = "user-input"
	GroupUserChoice  Group = "user-choice"
	GroupAdvanced    Group = "advanced"
)

// ValueKind classifies the answer value shape a type produces. The submission
// normalizer keys its coercion rules on this classification.
type ValueKind int

const (
	// ValueScalar covers single text/numeric answers.
	ValueScalar ValueKind = iota
	// ValueMulti covers checkbox/multi-select answers: always an array,
	// possibly empty, never nil.
	ValueMulti
	// ValueDate covers date answers: a single date or a two-element range,
	// always serialized to text at rest.
	ValueDate
)

// PropMap holds type-specific instance properties. Shapes are owned by the
// descriptor that declares them; the engine treats them as opaque apart from
// the "required" key consulted by the can-submit predicate.
type PropMap map[string]any

// Clone returns a shallow copy. Nested option slices are copied one level
// deep so palette defaults cannot be mutated through an instance.
func (p PropMap) Clone() PropMap {
	if p == nil {
		return nil
	}
	out := make(PropMap, len(p))
	for key, value := range p {
		if list, ok := value.([]any); ok {
			out[key] = append([]any(nil), list...)
			continue
		}
		out[key] = value
	}
	return out
}

// Required reports whether the props declare the instance as mandatory.
func (p PropMap) Required() bool {
	v, ok := p["required"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// RenderData carries the per-call inputs a widget renderer receives. Theme is
// an explicit parameter rather than ambient context so renders stay pure
// functions of their arguments.
type RenderData struct {
	InstanceID string
	Props      PropMap
	Value      any
	Disabled   bool
	OnChange   func(any)
	Theme      *theme.RendererConfig
}

// Renderer writes the display widget for one instance into buf.
type Renderer func(buf *bytes.Buffer, data RenderData) error

// EditorRenderer writes the property-editor widget for one instance into buf.
type EditorRenderer func(buf *bytes.Buffer, data RenderData) error

// StatisticRenderer writes an aggregate-table cell presentation for a stored
// value. Optional; the statistics table falls back to its own type dispatch
// when absent.
type StatisticRenderer func(buf *bytes.Buffer, value any) error

// Descriptor bundles everything the engine needs to know about one question
// type. Interactive lives here rather than in a separate allow-list so the
// classification cannot drift from the registration.
type Descriptor struct {
	Type         Type
	Title        string
	Group        Group
	Interactive  bool
	Kind         ValueKind
	DefaultProps PropMap

	Render          Renderer
	RenderEditor    EditorRenderer
	RenderStatistic StatisticRenderer
}
