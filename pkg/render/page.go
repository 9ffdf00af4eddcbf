package render

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
	rendertemplate "github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/render/template"
	gotemplate "github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/render/template/gotemplate"
)

// PageOption customises the page renderer.
type PageOption func(*pageConfig)

type pageConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	action           string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) PageOption {
	return func(cfg *pageConfig) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) PageOption {
	return func(cfg *pageConfig) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) PageOption {
	return func(cfg *pageConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSubmitAction sets the form action URL emitted on answer pages.
func WithSubmitAction(action string) PageOption {
	return func(cfg *pageConfig) {
		cfg.action = strings.TrimSpace(action)
	}
}

// PageRenderer renders a whole questionnaire to an HTML page by running the
// dispatcher over every instance and wrapping the widgets in the page
// template.
type PageRenderer struct {
	dispatcher *Dispatcher
	templates  rendertemplate.TemplateRenderer
	action     string
}

// NewPageRenderer constructs a page renderer over the given dispatcher.
func NewPageRenderer(dispatcher *Dispatcher, options ...PageOption) (*PageRenderer, error) {
	if dispatcher == nil {
		dispatcher = NewDispatcher(nil)
	}

	cfg := pageConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &PageRenderer{
		dispatcher: dispatcher,
		templates:  renderer,
		action:     cfg.action,
	}, nil
}

// Render produces the HTML page for a questionnaire in the given mode.
// values prefills answer-mode widgets keyed by instance id.
func (r *PageRenderer) Render(ctx context.Context, q questionnaire.Questionnaire, mode Mode, cfg Config, values map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	widgets := r.dispatcher.DispatchAll(q, mode, cfg, func(instanceID string) any {
		if values == nil {
			return nil
		}
		return values[instanceID]
	}, nil)

	payload := make([]map[string]any, 0, len(widgets))
	for _, widget := range widgets {
		payload = append(payload, map[string]any{
			"instance_id": widget.InstanceID,
			"type":        string(widget.Type),
			"html":        widget.HTML,
			"interactive": widget.Interactive,
		})
	}

	rendered, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":       q.Title,
		"description": q.Description,
		"mode":        mode.String(),
		"action":      r.action,
		"widgets":     payload,
		"theme_css":   themeCSS(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("render: render page template: %w", err)
	}
	return []byte(rendered), nil
}

// themeCSS flattens the theme token map into a :root CSS variable block.
func themeCSS(cfg Config) string {
	if cfg.Theme == nil || len(cfg.Theme.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.Theme.CSSVars))
	for key := range cfg.Theme.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.Theme.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
