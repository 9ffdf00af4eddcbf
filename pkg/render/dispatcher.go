package render

import (
	"bytes"

	theme "github.com/goliatone/go-theme"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// Config carries the per-call rendering context. Theme is passed explicitly
// rather than threaded through ambient state so dispatch stays a pure
// function of its arguments.
type Config struct {
	Theme *theme.RendererConfig
}

// Widget is the produced presentation for one instance.
type Widget struct {
	InstanceID  string
	Type        material.Type
	HTML        string
	Interactive bool
}

// Dispatcher resolves instances against a component registry and runs the
// role matching the requested mode.
type Dispatcher struct {
	registry *material.Registry
}

// NewDispatcher wires a dispatcher to a registry. A nil registry falls back
// to the built-in defaults.
func NewDispatcher(registry *material.Registry) *Dispatcher {
	if registry == nil {
		registry = material.NewDefaultRegistry()
	}
	return &Dispatcher{registry: registry}
}

// Registry exposes the backing registry for column titles and palette use.
func (d *Dispatcher) Registry() *material.Registry {
	return d.registry
}

// Dispatch produces the widget for one instance in the given mode. The second
// return is false when no widget should render: unknown type identifier,
// unknown mode, or a renderer failure. Failures never propagate past the
// instance; sibling instances render normally.
func (d *Dispatcher) Dispatch(inst questionnaire.Instance, mode Mode, cfg Config, value any, onChange func(any)) (Widget, bool) {
	desc, ok := d.registry.Lookup(inst.Type)
	if !ok {
		return Widget{}, false
	}

	data := material.RenderData{
		InstanceID: inst.InstanceID,
		Props:      mergeProps(desc.DefaultProps, inst.Props),
		Theme:      cfg.Theme,
	}

	renderFn := desc.Render
	switch mode {
	case ModeDesign:
		if desc.RenderEditor != nil {
			renderFn = material.Renderer(desc.RenderEditor)
		} else {
			data.Disabled = true
		}
	case ModePreview:
		data.Disabled = true
	case ModeAnswer:
		if desc.Interactive {
			data.Value = value
			data.OnChange = onChange
		} else {
			data.Disabled = true
		}
	default:
		return Widget{}, false
	}

	var buf bytes.Buffer
	if err := renderFn(&buf, data); err != nil {
		return Widget{}, false
	}

	return Widget{
		InstanceID:  inst.InstanceID,
		Type:        inst.Type,
		HTML:        buf.String(),
		Interactive: mode == ModeAnswer && desc.Interactive,
	}, true
}

// DispatchAll renders every applicable instance of a questionnaire in canvas
// order. Design mode includes hidden instances (the author still edits them);
// Preview and Answer skip instances not visible to respondents. Instances
// whose type cannot render are silently skipped.
func (d *Dispatcher) DispatchAll(q questionnaire.Questionnaire, mode Mode, cfg Config, valueOf func(instanceID string) any, onChangeFor func(instanceID string) func(any)) []Widget {
	widgets := make([]Widget, 0, len(q.Instances))
	for _, inst := range q.Active() {
		if mode != ModeDesign && !inst.Visible {
			continue
		}
		var (
			value    any
			onChange func(any)
		)
		if valueOf != nil {
			value = valueOf(inst.InstanceID)
		}
		if onChangeFor != nil {
			onChange = onChangeFor(inst.InstanceID)
		}
		if widget, ok := d.Dispatch(inst, mode, cfg, value, onChange); ok {
			widgets = append(widgets, widget)
		}
	}
	return widgets
}

// mergeProps lays live instance props over the descriptor defaults, so each
// widget sees a complete prop set even when the stored props are partial or
// malformed.
func mergeProps(defaults, live material.PropMap) material.PropMap {
	if len(live) == 0 {
		return defaults.Clone()
	}
	merged := defaults.Clone()
	if merged == nil {
		merged = make(material.PropMap, len(live))
	}
	for key, value := range live {
		merged[key] = value
	}
	return merged
}
