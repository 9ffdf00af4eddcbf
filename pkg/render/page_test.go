package render

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

func testQuestionnaire() questionnaire.Questionnaire {
	return questionnaire.Questionnaire{
		ID:          "q-100",
		Title:       "Customer Survey",
		Description: "Tell us how we did.",
		Instances: []questionnaire.Instance{
			{InstanceID: "t1", Type: material.TypeTitle, Props: material.PropMap{"text": "Welcome"}, Visible: true},
			{InstanceID: "c1", Type: material.TypeInput, Props: material.PropMap{"title": "Your name"}, Visible: true},
			{InstanceID: "c2", Type: material.TypeRadio, Props: material.PropMap{
				"title":   "Satisfied?",
				"options": []any{"Yes", "No"},
			}, Visible: true},
		},
	}
}

func TestPageRendererAnswerMode(t *testing.T) {
	r, err := NewPageRenderer(nil, WithSubmitAction("/api/answer"))
	if err != nil {
		t.Fatalf("NewPageRenderer: %v", err)
	}

	page, err := r.Render(context.Background(), testQuestionnaire(), ModeAnswer, Config{}, map[string]any{
		"c1": "Ada",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(page)
	for _, want := range []string{
		"<title>Customer Survey</title>",
		"qz-mode-answer",
		`action="/api/answer"`,
		`data-instance="c1"`,
		`value="Ada"`,
		`data-type="question-radio"`,
		"qz-submit",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q:\n%s", want, html)
		}
	}
}

func TestPageRendererPreviewHasNoForm(t *testing.T) {
	r, err := NewPageRenderer(nil)
	if err != nil {
		t.Fatalf("NewPageRenderer: %v", err)
	}

	page, err := r.Render(context.Background(), testQuestionnaire(), ModePreview, Config{}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(page)
	if strings.Contains(html, "<form") {
		t.Fatalf("preview page must not wrap widgets in a form:\n%s", html)
	}
	if !strings.Contains(html, "qz-mode-preview") {
		t.Fatalf("expected preview mode class:\n%s", html)
	}
}

func TestPageRendererThemeCSS(t *testing.T) {
	r, err := NewPageRenderer(nil)
	if err != nil {
		t.Fatalf("NewPageRenderer: %v", err)
	}

	cfg := Config{Theme: &theme.RendererConfig{
		Theme: "default",
		CSSVars: map[string]string{
			"--qz-accent": "#4f46e5",
			"--qz-radius": "6px",
		},
	}}

	page, err := r.Render(context.Background(), testQuestionnaire(), ModeAnswer, cfg, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(page)
	if !strings.Contains(html, "--qz-accent: #4f46e5;") {
		t.Fatalf("expected theme CSS var in page:\n%s", html)
	}
	accent := strings.Index(html, "--qz-accent")
	radius := strings.Index(html, "--qz-radius")
	if accent == -1 || radius == -1 || accent > radius {
		t.Fatalf("theme vars should be emitted sorted: accent=%d radius=%d", accent, radius)
	}
}

func TestPageRendererCancelledContext(t *testing.T) {
	r, err := NewPageRenderer(nil)
	if err != nil {
		t.Fatalf("NewPageRenderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, testQuestionnaire(), ModeAnswer, Config{}, nil); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestThemeCSSEmptyWithoutTheme(t *testing.T) {
	if got := themeCSS(Config{}); got != "" {
		t.Fatalf("expected empty CSS block, got %q", got)
	}
}
