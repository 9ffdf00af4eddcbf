package stats

import (
	"strings"
	"testing"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
)

func TestCellPlaceholders(t *testing.T) {
	for _, value := range []any{nil, ""} {
		if got := Cell(material.TypeInput, value); got != placeholder {
			t.Fatalf("Cell(%#v) = %q, want placeholder", value, got)
		}
	}
}

func TestCellSignature(t *testing.T) {
	payload := "data:image/png;base64,iVBORw0KGgo="
	got := Cell(material.TypeSignature, payload)
	if !strings.Contains(got, `<img src="`+payload+`"`) {
		t.Fatalf("expected thumbnail, got %q", got)
	}
	if !strings.Contains(got, `href="`+payload+`"`) {
		t.Fatalf("expected full-size link, got %q", got)
	}

	if got := Cell(material.TypeSignature, "just text"); !strings.Contains(got, "no signature") {
		t.Fatalf("non-image payload should fall back to text, got %q", got)
	}
	if got := Cell(material.TypeSignature, "javascript:alert(1)"); strings.Contains(got, "javascript") {
		t.Fatalf("non-image payload must not be embedded, got %q", got)
	}
}

func TestCellColor(t *testing.T) {
	got := Cell(material.TypeColor, "#4f46e5")
	if !strings.Contains(got, "background-color:#4f46e5") || !strings.Contains(got, "#4f46e5</span>") {
		t.Fatalf("expected swatch with hex text, got %q", got)
	}

	if got := Cell(material.TypeColor, "blue"); strings.Contains(got, "qz-cell-color") {
		t.Fatalf("non-hex value should fall back, got %q", got)
	}
}

func TestCellRate(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{3.0, "★★★ (3)"},
		{3.5, "★★★½ (3.5)"},
		{0.0, " (0)"},
	}
	for _, tc := range cases {
		got := Cell(material.TypeRate, tc.value)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("Cell(rate, %v) = %q, want substring %q", tc.value, got, tc.want)
		}
	}
}

func TestCellRateOutOfRangeFallsBack(t *testing.T) {
	for _, value := range []any{1_000_000.0, 11.0, -3.0} {
		got := Cell(material.TypeRate, value)
		if strings.Contains(got, "★") {
			t.Fatalf("Cell(rate, %v) drew stars for an out-of-range value: %q", value, got)
		}
		if !strings.Contains(got, `<span class="qz-cell"`) {
			t.Fatalf("Cell(rate, %v) = %q, want generic scalar cell", value, got)
		}
		if len(got) > 200 {
			t.Fatalf("Cell(rate, %v) produced %d bytes", value, len(got))
		}
	}
}

func TestCellNPSBands(t *testing.T) {
	cases := []struct {
		score float64
		band  string
	}{
		{0, "detractor"},
		{6, "detractor"},
		{7, "passive"},
		{8, "passive"},
		{9, "promoter"},
		{10, "promoter"},
	}
	for _, tc := range cases {
		got := Cell(material.TypeNPS, tc.score)
		if !strings.Contains(got, "qz-nps-"+tc.band) {
			t.Fatalf("Cell(nps, %v) = %q, want band %q", tc.score, got, tc.band)
		}
	}

	if got := Cell(material.TypeNPS, 7.5); strings.Contains(got, "qz-nps-") {
		t.Fatalf("non-integer NPS value should fall back, got %q", got)
	}
	if got := Cell(material.TypeNPS, 42.0); strings.Contains(got, "qz-nps-") {
		t.Fatalf("out-of-range NPS value should fall back, got %q", got)
	}
}

func TestCellMatrix(t *testing.T) {
	value := map[string]any{
		"r1": "c1",
		"r2": []any{"c1", "c2"},
	}
	got := Cell(material.TypeMatrix, value)
	if !strings.Contains(got, "r1: c1") || !strings.Contains(got, "r2: c1, c2") {
		t.Fatalf("expected row lines, got %q", got)
	}
}

func TestCellMatrixTruncation(t *testing.T) {
	value := map[string]any{
		"r1": "a", "r2": "b", "r3": "c", "r4": "d", "r5": "e",
	}
	got := Cell(material.TypeMatrix, value)
	if !strings.Contains(got, "+2 more") {
		t.Fatalf("expected overflow suffix, got %q", got)
	}
	if strings.Contains(got, "r4") || strings.Contains(got, "r5") {
		t.Fatalf("rows past the cut must not render, got %q", got)
	}
}

func TestCellMatrixMalformedFallsBack(t *testing.T) {
	got := Cell(material.TypeMatrix, "not-an-object")
	if !strings.Contains(got, "not-an-object") {
		t.Fatalf("malformed matrix value should render as scalar, got %q", got)
	}
	if strings.Contains(got, "qz-cell-matrix") {
		t.Fatalf("malformed matrix value must not use the matrix layout, got %q", got)
	}
}

func TestCellEmoji(t *testing.T) {
	got := Cell(material.TypeEmoji, "🎉")
	if !strings.Contains(got, "qz-cell-emoji") || !strings.Contains(got, "🎉") {
		t.Fatalf("expected oversized glyph, got %q", got)
	}
}

func TestCellChips(t *testing.T) {
	got := Cell(material.TypeUpload, []any{"a.png", "b.png", "c.png", "d.png", "e.png"})
	if strings.Count(got, `<span class="qz-chip">`) != maxChips {
		t.Fatalf("expected %d chips, got %q", maxChips, got)
	}
	if !strings.Contains(got, "+2</span>") {
		t.Fatalf("expected overflow chip, got %q", got)
	}
}

func TestCellGenericShapes(t *testing.T) {
	if got := Cell(material.TypeInput, []any{"a", "b"}); !strings.Contains(got, "a, b") {
		t.Fatalf("generic array should comma-join, got %q", got)
	}
	if got := Cell(material.TypeInput, map[string]any{"k": "v"}); !strings.Contains(got, `{&#34;k&#34;:&#34;v&#34;}`) {
		t.Fatalf("generic object should serialize compactly, got %q", got)
	}
	if got := Cell(material.TypeInput, 8.0); !strings.Contains(got, ">8</span>") {
		t.Fatalf("scalar should render as text, got %q", got)
	}
}

func TestCellEscapesStoredMarkup(t *testing.T) {
	got := Cell(material.TypeInput, `<script>alert(1)</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("stored markup must be stripped, got %q", got)
	}
}

func TestCellDoesNotMutate(t *testing.T) {
	value := map[string]any{"r1": []any{"c1"}}
	Cell(material.TypeMatrix, value)
	picks, ok := value["r1"].([]any)
	if !ok || len(picks) != 1 || picks[0] != "c1" {
		t.Fatalf("input mutated: %#v", value)
	}
}
