package material

import (
	"bytes"
	"strings"
	"testing"
)

func renderWidget(t *testing.T, typ Type, data RenderData) string {
	t.Helper()
	reg := NewDefaultRegistry()
	desc, ok := reg.Lookup(typ)
	if !ok {
		t.Fatalf("%s not registered", typ)
	}
	if data.Props == nil {
		data.Props = desc.DefaultProps
	}
	var buf bytes.Buffer
	if err := desc.Render(&buf, data); err != nil {
		t.Fatalf("render %s: %v", typ, err)
	}
	return buf.String()
}

func TestInputRendererBindsNameAndValue(t *testing.T) {
	out := renderWidget(t, TypeInput, RenderData{
		InstanceID: "c1",
		Value:      "hello",
	})
	if !strings.Contains(out, `name="c1"`) {
		t.Fatalf("control name missing: %s", out)
	}
	if !strings.Contains(out, `value="hello"`) {
		t.Fatalf("value not bound: %s", out)
	}
}

func TestInputRendererDisabled(t *testing.T) {
	out := renderWidget(t, TypeInput, RenderData{InstanceID: "c1", Disabled: true})
	if !strings.Contains(out, " disabled") {
		t.Fatalf("expected disabled control: %s", out)
	}
}

func TestCheckboxRendererChecksSelected(t *testing.T) {
	out := renderWidget(t, TypeCheckbox, RenderData{
		InstanceID: "c2",
		Props:      PropMap{"title": "Pick", "options": []any{"a", "b"}},
		Value:      []any{"b"},
	})
	if strings.Count(out, "checked") != 1 {
		t.Fatalf("expected exactly one checked option: %s", out)
	}
	if !strings.Contains(out, `type="checkbox"`) {
		t.Fatalf("expected checkbox inputs: %s", out)
	}
}

func TestMatrixRendererChecksCell(t *testing.T) {
	out := renderWidget(t, TypeMatrix, RenderData{
		InstanceID: "c3",
		Props: PropMap{
			"rows":    []any{"r1", "r2"},
			"columns": []any{"col1", "col2"},
		},
		Value: map[string]any{"r1": "col2"},
	})
	if !strings.Contains(out, `name="c3.r1"`) {
		t.Fatalf("row-scoped control name missing: %s", out)
	}
	if strings.Count(out, "checked") != 1 {
		t.Fatalf("expected one checked cell: %s", out)
	}
}

func TestLabelEscapesHTML(t *testing.T) {
	out := renderWidget(t, TypeInput, RenderData{
		InstanceID: "c4",
		Props:      PropMap{"title": "<script>alert(1)</script>"},
	})
	if strings.Contains(out, "<script>") {
		t.Fatalf("label not escaped: %s", out)
	}
}

func TestRequiredMarker(t *testing.T) {
	out := renderWidget(t, TypeInput, RenderData{
		InstanceID: "c5",
		Props:      PropMap{"title": "Name", "required": true},
	})
	if !strings.Contains(out, "qz-required") {
		t.Fatalf("required marker missing: %s", out)
	}
}

func TestDateRangeRendersTwoControls(t *testing.T) {
	out := renderWidget(t, TypeDate, RenderData{
		InstanceID: "c6",
		Props:      PropMap{"range": true},
		Value:      []any{"2024-01-01", "2024-01-31"},
	})
	if strings.Count(out, `type="date"`) != 2 {
		t.Fatalf("expected two date inputs for range: %s", out)
	}
	if !strings.Contains(out, `value="2024-01-31"`) {
		t.Fatalf("range end not prefilled: %s", out)
	}
}

func TestPropEditorCoversDefaults(t *testing.T) {
	reg := NewDefaultRegistry()
	desc, _ := reg.Lookup(TypeRadio)

	var buf bytes.Buffer
	if err := desc.RenderEditor(&buf, RenderData{InstanceID: "c7", Props: desc.DefaultProps}); err != nil {
		t.Fatalf("editor: %v", err)
	}
	out := buf.String()
	for _, key := range []string{"title", "options", "required"} {
		if !strings.Contains(out, "props.c7."+key) {
			t.Fatalf("editor missing control for %q: %s", key, out)
		}
	}
}
