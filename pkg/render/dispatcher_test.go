package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

func TestDispatchAnswerMode(t *testing.T) {
	d := NewDispatcher(nil)

	inst := questionnaire.Instance{
		InstanceID: "c1",
		Type:       material.TypeInput,
		Props:      material.PropMap{"title": "Your name"},
		Visible:    true,
	}

	widget, ok := d.Dispatch(inst, ModeAnswer, Config{}, "Ada", nil)
	if !ok {
		t.Fatalf("Dispatch returned ok=false")
	}
	if !widget.Interactive {
		t.Fatalf("expected interactive widget in answer mode")
	}
	if !strings.Contains(widget.HTML, `value="Ada"`) {
		t.Fatalf("expected bound value in HTML, got:\n%s", widget.HTML)
	}
	if strings.Contains(widget.HTML, "disabled") {
		t.Fatalf("answer-mode interactive widget must not be disabled:\n%s", widget.HTML)
	}
}

func TestDispatchPreviewDisables(t *testing.T) {
	d := NewDispatcher(nil)

	inst := questionnaire.Instance{InstanceID: "c1", Type: material.TypeInput, Visible: true}
	widget, ok := d.Dispatch(inst, ModePreview, Config{}, nil, nil)
	if !ok {
		t.Fatalf("Dispatch returned ok=false")
	}
	if widget.Interactive {
		t.Fatalf("preview widgets are never interactive")
	}
	if !strings.Contains(widget.HTML, "disabled") {
		t.Fatalf("preview widget should render disabled:\n%s", widget.HTML)
	}
}

func TestDispatchDesignUsesEditor(t *testing.T) {
	d := NewDispatcher(nil)

	inst := questionnaire.Instance{InstanceID: "c1", Type: material.TypeInput, Visible: true}
	widget, ok := d.Dispatch(inst, ModeDesign, Config{}, nil, nil)
	if !ok {
		t.Fatalf("Dispatch returned ok=false")
	}
	if !strings.Contains(widget.HTML, "props.c1.") {
		t.Fatalf("design mode should render the property editor, got:\n%s", widget.HTML)
	}
}

func TestDispatchDisplayTypeStaysStaticInAnswerMode(t *testing.T) {
	d := NewDispatcher(nil)

	inst := questionnaire.Instance{InstanceID: "t1", Type: material.TypeTitle, Visible: true}
	widget, ok := d.Dispatch(inst, ModeAnswer, Config{}, "ignored", nil)
	if !ok {
		t.Fatalf("Dispatch returned ok=false")
	}
	if widget.Interactive {
		t.Fatalf("display types must not become interactive in answer mode")
	}
}

func TestDispatchUnknownTypeAndMode(t *testing.T) {
	d := NewDispatcher(nil)

	if _, ok := d.Dispatch(questionnaire.Instance{InstanceID: "x", Type: "question-hologram"}, ModeAnswer, Config{}, nil, nil); ok {
		t.Fatalf("unknown type must not produce a widget")
	}
	if _, ok := d.Dispatch(questionnaire.Instance{InstanceID: "x", Type: material.TypeInput}, Mode(99), Config{}, nil, nil); ok {
		t.Fatalf("unknown mode must not produce a widget")
	}
}

func TestDispatchAllIsolatesFailures(t *testing.T) {
	registry := material.NewDefaultRegistry()
	registry.MustRegister(material.Descriptor{
		Type:        "question-broken",
		Title:       "Broken",
		Group:       material.GroupAdvanced,
		Interactive: true,
		Render: func(_ *bytes.Buffer, _ material.RenderData) error {
			return errors.New("render failed")
		},
	})
	d := NewDispatcher(registry)

	q := questionnaire.Questionnaire{Instances: []questionnaire.Instance{
		{InstanceID: "a", Type: material.TypeInput, Visible: true},
		{InstanceID: "b", Type: "question-broken", Visible: true},
		{InstanceID: "c", Type: "question-hologram", Visible: true},
		{InstanceID: "d", Type: material.TypeRadio, Visible: true},
	}}

	widgets := d.DispatchAll(q, ModeAnswer, Config{}, nil, nil)
	if len(widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(widgets))
	}
	if widgets[0].InstanceID != "a" || widgets[1].InstanceID != "d" {
		t.Fatalf("unexpected survivors: %q, %q", widgets[0].InstanceID, widgets[1].InstanceID)
	}
}

func TestDispatchAllVisibility(t *testing.T) {
	d := NewDispatcher(nil)

	q := questionnaire.Questionnaire{Instances: []questionnaire.Instance{
		{InstanceID: "shown", Type: material.TypeInput, Visible: true},
		{InstanceID: "hidden", Type: material.TypeInput, Visible: false},
	}}

	if got := d.DispatchAll(q, ModeAnswer, Config{}, nil, nil); len(got) != 1 || got[0].InstanceID != "shown" {
		t.Fatalf("answer mode should skip hidden instances, got %+v", got)
	}
	if got := d.DispatchAll(q, ModeDesign, Config{}, nil, nil); len(got) != 2 {
		t.Fatalf("design mode should include hidden instances, got %d widgets", len(got))
	}
}

func TestDispatchAllValueLookup(t *testing.T) {
	d := NewDispatcher(nil)

	q := questionnaire.Questionnaire{Instances: []questionnaire.Instance{
		{InstanceID: "name", Type: material.TypeInput, Visible: true},
	}}
	values := map[string]any{"name": "Grace"}

	widgets := d.DispatchAll(q, ModeAnswer, Config{}, func(id string) any { return values[id] }, nil)
	if len(widgets) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(widgets))
	}
	if !strings.Contains(widgets[0].HTML, `value="Grace"`) {
		t.Fatalf("expected prefilled value, got:\n%s", widgets[0].HTML)
	}
}

func TestMergePropsDoesNotMutateDefaults(t *testing.T) {
	defaults := material.PropMap{"title": "Default", "placeholder": "..."}
	live := material.PropMap{"title": "Custom"}

	merged := mergeProps(defaults, live)
	if merged["title"] != "Custom" {
		t.Fatalf("live props must win, got %v", merged["title"])
	}
	if merged["placeholder"] != "..." {
		t.Fatalf("defaults must fill gaps, got %v", merged["placeholder"])
	}
	if defaults["title"] != "Default" {
		t.Fatalf("defaults were mutated: %v", defaults["title"])
	}
}
