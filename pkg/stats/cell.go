package stats

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
)

const (
	placeholder = `<span class="qz-cell qz-cell-empty">&mdash;</span>`

	maxMatrixRows = 3
	maxChips      = 3
	maxRateStars  = 10
)

// textPolicy strips all markup from stored values before they are embedded
// in cell HTML. Respondent input is never trusted.
var textPolicy = bluemonday.StrictPolicy()

var (
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	imageDataURI    = regexp.MustCompile(`^data:image/(?:png|jpeg|gif|webp);base64,[A-Za-z0-9+/=]+$`)
)

// Cell renders one stored answer value as an HTML fragment for the
// statistics table. It is total: any (type, value) pair yields a
// presentation, malformed values falling back to the closest generic shape.
// The input value is never mutated.
func Cell(t material.Type, value any) string {
	if value == nil || value == "" {
		return placeholder
	}

	switch t {
	case material.TypeSignature:
		return signatureCell(value)
	case material.TypeColor:
		if text, ok := value.(string); ok && hexColorPattern.MatchString(text) {
			return fmt.Sprintf(
				`<span class="qz-cell qz-cell-color"><i class="qz-swatch" style="background-color:%s"></i> %s</span>`,
				text, text)
		}
	case material.TypeRate:
		if n, ok := asNumber(value); ok && n >= 0 && n <= maxRateStars {
			return rateCell(n)
		}
	case material.TypeNPS:
		if n, ok := asNumber(value); ok && n == float64(int(n)) && n >= 0 && n <= 10 {
			return npsCell(int(n))
		}
	case material.TypeMatrix:
		if rows, ok := value.(map[string]any); ok {
			return matrixCell(rows)
		}
	case material.TypeEmoji:
		if glyph, ok := value.(string); ok {
			return fmt.Sprintf(`<span class="qz-cell qz-cell-emoji">%s</span>`, escape(glyph))
		}
	case material.TypeImageChoice, material.TypeUpload:
		if items, ok := asSlice(value); ok {
			return chipsCell(items)
		}
	}

	switch v := value.(type) {
	case []any:
		return arrayCell(v)
	case map[string]any:
		return objectCell(v)
	default:
		text := scalarText(value)
		return fmt.Sprintf(`<span class="qz-cell" title="%s">%s</span>`, escape(text), escape(text))
	}
}

func signatureCell(value any) string {
	if text, ok := value.(string); ok && imageDataURI.MatchString(text) {
		return fmt.Sprintf(
			`<a class="qz-cell qz-cell-signature" href="%[1]s" target="_blank"><img src="%[1]s" alt="signature"></a>`,
			text)
	}
	return `<span class="qz-cell qz-cell-empty">no signature</span>`
}

// rateCell draws full and half star glyphs, half-step aware, with the raw
// numeric value in parentheses. Callers guard the 0..maxRateStars range.
func rateCell(n float64) string {
	full := int(n)
	half := n-float64(full) >= 0.5

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteString("★")
	}
	if half {
		b.WriteString("½")
	}
	return fmt.Sprintf(`<span class="qz-cell qz-cell-rate">%s (%s)</span>`, b.String(), formatNumber(n))
}

func npsCell(score int) string {
	band, label := "promoter", "promoter"
	switch {
	case score <= 6:
		band, label = "detractor", "detractor"
	case score <= 8:
		band, label = "passive", "passive"
	}
	return fmt.Sprintf(`<span class="qz-cell qz-tag qz-nps-%s">%d %s</span>`, band, score, label)
}

// matrixCell renders "row: column(s)" lines, truncated past the first few
// rows. Row iteration is sorted so output stays stable across renders.
func matrixCell(rows map[string]any) string {
	keys := sortedKeys(rows)

	var b strings.Builder
	b.WriteString(`<div class="qz-cell qz-cell-matrix">`)
	shown := keys
	if len(shown) > maxMatrixRows {
		shown = shown[:maxMatrixRows]
	}
	for _, key := range shown {
		columns := key + ": "
		if picks, ok := asSlice(rows[key]); ok {
			parts := make([]string, 0, len(picks))
			for _, pick := range picks {
				parts = append(parts, scalarText(pick))
			}
			columns += strings.Join(parts, ", ")
		} else {
			columns += scalarText(rows[key])
		}
		b.WriteString(`<div class="qz-matrix-row">`)
		b.WriteString(escape(columns))
		b.WriteString(`</div>`)
	}
	if overflow := len(keys) - len(shown); overflow > 0 {
		fmt.Fprintf(&b, `<div class="qz-matrix-more">+%d more</div>`, overflow)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func chipsCell(items []any) string {
	var b strings.Builder
	b.WriteString(`<span class="qz-cell qz-cell-chips">`)
	shown := items
	if len(shown) > maxChips {
		shown = shown[:maxChips]
	}
	for _, item := range shown {
		b.WriteString(`<span class="qz-chip">`)
		b.WriteString(escape(scalarText(item)))
		b.WriteString(`</span>`)
	}
	if overflow := len(items) - len(shown); overflow > 0 {
		fmt.Fprintf(&b, `<span class="qz-chip qz-chip-more">+%d</span>`, overflow)
	}
	b.WriteString(`</span>`)
	return b.String()
}

func arrayCell(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, scalarText(item))
	}
	joined := escape(strings.Join(parts, ", "))
	return fmt.Sprintf(`<span class="qz-cell qz-cell-array" title="%s">%s</span>`, joined, joined)
}

func objectCell(obj map[string]any) string {
	compact, err := json.Marshal(obj)
	if err != nil {
		return placeholder
	}
	text := escape(string(compact))
	return fmt.Sprintf(`<span class="qz-cell qz-cell-object" title="%s">%s</span>`, text, text)
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
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

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func escape(s string) string {
	return textPolicy.Sanitize(s)
}
