package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// Option configures the importer.
type Option func(*Importer)

// WithOperation restricts the import to one operation by operationId. Without
// it the first body-carrying operation in path order is used.
func WithOperation(operationID string) Option {
	return func(i *Importer) {
		i.operationID = strings.TrimSpace(operationID)
	}
}

// Importer converts OpenAPI request schemas into questionnaire definitions.
type Importer struct {
	operationID string
}

// New constructs an importer.
func New(options ...Option) *Importer {
	i := &Importer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	return i
}

// Import parses an OpenAPI document and builds a questionnaire from the
// selected operation's request schema. Only object schemas can be imported;
// each property becomes one instance, in sorted property order.
func (i *Importer) Import(ctx context.Context, data []byte) (questionnaire.Questionnaire, error) {
	if err := ctx.Err(); err != nil {
		return questionnaire.Questionnaire{}, err
	}
	if len(data) == 0 {
		return questionnaire.Questionnaire{}, errors.New("importer: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return questionnaire.Questionnaire{}, fmt.Errorf("importer: load document: %w", err)
	}

	operation, title, err := i.selectOperation(spec)
	if err != nil {
		return questionnaire.Questionnaire{}, err
	}

	schema := requestSchema(operation)
	if schema == nil || len(schema.Properties) == 0 {
		return questionnaire.Questionnaire{}, errors.New("importer: operation has no object request schema")
	}

	q := questionnaire.Questionnaire{
		ID:          operation.OperationID,
		Title:       title,
		Description: operation.Description,
	}
	if operation.Summary != "" {
		if err := q.Add(questionnaire.Instance{
			InstanceID: "heading",
			Type:       material.TypeTitle,
			Props:      material.PropMap{"text": operation.Summary},
			Visible:    true,
		}); err != nil {
			return questionnaire.Questionnaire{}, err
		}
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		inst := instanceFor(name, ref.Value, required[name])
		if err := q.Add(inst); err != nil {
			return questionnaire.Questionnaire{}, err
		}
	}
	return q, nil
}

func (i *Importer) selectOperation(spec *openapi3.T) (*openapi3.Operation, string, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, "", errors.New("importer: document does not contain any paths")
	}

	title := ""
	if spec.Info != nil {
		title = spec.Info.Title
	}

	paths := make([]string, 0, spec.Paths.Len())
	for path := range spec.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := spec.Paths.Map()[path]
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{item.Post, item.Put, item.Patch} {
			if operation == nil || operation.RequestBody == nil {
				continue
			}
			if i.operationID != "" && operation.OperationID != i.operationID {
				continue
			}
			return operation, title, nil
		}
	}

	if i.operationID != "" {
		return nil, "", fmt.Errorf("importer: operation %q not found", i.operationID)
	}
	return nil, "", errors.New("importer: no operation with a request body")
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// instanceFor maps one schema property onto the closest question type.
func instanceFor(name string, schema *openapi3.Schema, required bool) questionnaire.Instance {
	props := material.PropMap{"title": titleFor(name, schema)}
	if schema.Description != "" {
		props["placeholder"] = schema.Description
	}
	if required {
		props["required"] = true
	}

	inst := questionnaire.Instance{
		InstanceID: name,
		Visible:    true,
		Props:      props,
	}
	inst.Type = typeFor(schema, props)
	return inst
}

func typeFor(schema *openapi3.Schema, props material.PropMap) material.Type {
	if len(schema.Enum) > 0 {
		props["options"] = enumOptions(schema.Enum)
		return material.TypeRadio
	}

	switch firstType(schema.Type) {
	case "boolean":
		props["options"] = []any{"Yes", "No"}
		return material.TypeRadio
	case "integer", "number":
		return material.TypeNumber
	case "array":
		if schema.Items != nil && schema.Items.Value != nil && len(schema.Items.Value.Enum) > 0 {
			props["options"] = enumOptions(schema.Items.Value.Enum)
			return material.TypeCheckbox
		}
		return material.TypeWordCloud
	case "string", "":
		switch schema.Format {
		case "date", "date-time":
			return material.TypeDate
		case "time":
			return material.TypeTime
		case "binary", "byte":
			return material.TypeUpload
		}
		if schema.MaxLength != nil && *schema.MaxLength > 200 {
			return material.TypeTextarea
		}
		return material.TypeInput
	default:
		return material.TypeInput
	}
}

func enumOptions(enum []any) []any {
	out := make([]any, 0, len(enum))
	for _, item := range enum {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

func titleFor(name string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
