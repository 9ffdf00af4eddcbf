package material

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

// Widget renderers write plain HTML fragments. Control names always equal the
// owning instance identifier so collected form values map back onto the
// answer collector without translation.

func controlID(instanceID string) string {
	return "qz-" + instanceID
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" ")
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteString(`"`)
}

func writeDisabled(buf *bytes.Buffer, data RenderData) {
	if data.Disabled {
		buf.WriteString(" disabled")
	}
}

func writeQuestionLabel(buf *bytes.Buffer, data RenderData) {
	label := stringProp(data.Props, "title", "")
	if label == "" {
		return
	}
	buf.WriteString(`<label class="qz-label" for="`)
	buf.WriteString(html.EscapeString(controlID(data.InstanceID)))
	buf.WriteString(`">`)
	buf.WriteString(html.EscapeString(label))
	if data.Props.Required() {
		buf.WriteString(` <span class="qz-required">*</span>`)
	}
	buf.WriteString("</label>\n")
}

func stringProp(props PropMap, key, fallback string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func numberProp(props PropMap, key string, fallback float64) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

func boolProp(props PropMap, key string) bool {
	b, _ := props[key].(bool)
	return b
}

func optionsProp(props PropMap, key string) []string {
	raw, ok := props[key]
	if !ok {
		return nil
	}
	switch list := raw.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func valueString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func valueStrings(value any) []string {
	switch list := value.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func contains(list []string, item string) bool {
	for _, candidate := range list {
		if candidate == item {
			return true
		}
	}
	return false
}

func titleRenderer(buf *bytes.Buffer, data RenderData) error {
	level := int(numberProp(data.Props, "level", 1))
	if level < 1 || level > 4 {
		level = 1
	}
	tag := fmt.Sprintf("h%d", level)
	buf.WriteString("<" + tag + ` class="qz-title">`)
	buf.WriteString(html.EscapeString(stringProp(data.Props, "text", "Title")))
	buf.WriteString("</" + tag + ">\n")
	return nil
}

func paragraphRenderer(buf *bytes.Buffer, data RenderData) error {
	align := stringProp(data.Props, "align", "left")
	buf.WriteString(`<p class="qz-paragraph"`)
	writeAttr(buf, "style", "text-align: "+align)
	buf.WriteString(">")
	for idx, line := range strings.Split(stringProp(data.Props, "text", ""), "\n") {
		if idx > 0 {
			buf.WriteString("<br>")
		}
		buf.WriteString(html.EscapeString(line))
	}
	buf.WriteString("</p>\n")
	return nil
}

func dividerRenderer(buf *bytes.Buffer, _ RenderData) error {
	buf.WriteString("<hr class=\"qz-divider\">\n")
	return nil
}

func inputRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="text" class="qz-input"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if placeholder := stringProp(data.Props, "placeholder", ""); placeholder != "" {
		writeAttr(buf, "placeholder", placeholder)
	}
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func textareaRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<textarea class="qz-textarea"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	writeAttr(buf, "rows", fmt.Sprint(int(numberProp(data.Props, "rows", 4))))
	if placeholder := stringProp(data.Props, "placeholder", ""); placeholder != "" {
		writeAttr(buf, "placeholder", placeholder)
	}
	writeDisabled(buf, data)
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(valueString(data.Value)))
	buf.WriteString("</textarea>\n")
	return nil
}

func numberRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="number" class="qz-number"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if _, ok := data.Props["min"]; ok {
		writeAttr(buf, "min", fmt.Sprint(numberProp(data.Props, "min", 0)))
	}
	if _, ok := data.Props["max"]; ok {
		writeAttr(buf, "max", fmt.Sprint(numberProp(data.Props, "max", 0)))
	}
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func choiceRenderer(multiple bool) Renderer {
	return func(buf *bytes.Buffer, data RenderData) error {
		writeQuestionLabel(buf, data)
		inputType := "radio"
		selected := []string{valueString(data.Value)}
		if multiple {
			inputType = "checkbox"
			selected = valueStrings(data.Value)
		}
		buf.WriteString(`<div class="qz-options">` + "\n")
		for _, option := range optionsProp(data.Props, "options") {
			buf.WriteString(`  <label class="qz-option"><input`)
			writeAttr(buf, "type", inputType)
			writeAttr(buf, "name", data.InstanceID)
			writeAttr(buf, "value", option)
			if contains(selected, option) {
				buf.WriteString(" checked")
			}
			writeDisabled(buf, data)
			buf.WriteString("> ")
			buf.WriteString(html.EscapeString(option))
			buf.WriteString("</label>\n")
		}
		buf.WriteString("</div>\n")
		return nil
	}
}

func selectRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<select class="qz-select"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	buf.WriteString(`  <option value="">`)
	buf.WriteString(html.EscapeString(stringProp(data.Props, "placeholder", "Select")))
	buf.WriteString("</option>\n")
	current := valueString(data.Value)
	for _, option := range optionsProp(data.Props, "options") {
		buf.WriteString("  <option")
		writeAttr(buf, "value", option)
		if option == current && current != "" {
			buf.WriteString(" selected")
		}
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(option))
		buf.WriteString("</option>\n")
	}
	buf.WriteString("</select>\n")
	return nil
}

func imageChoiceRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	selected := valueStrings(data.Value)
	buf.WriteString(`<div class="qz-image-options">` + "\n")
	for _, src := range optionsProp(data.Props, "options") {
		buf.WriteString(`  <label class="qz-image-option"><input type="checkbox"`)
		writeAttr(buf, "name", data.InstanceID)
		writeAttr(buf, "value", src)
		if contains(selected, src) {
			buf.WriteString(" checked")
		}
		writeDisabled(buf, data)
		buf.WriteString(`><img`)
		writeAttr(buf, "src", src)
		writeAttr(buf, "alt", "")
		buf.WriteString("></label>\n")
	}
	buf.WriteString("</div>\n")
	return nil
}

func dateRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	if boolProp(data.Props, "range") {
		values := valueStrings(data.Value)
		for idx, suffix := range []string{"start", "end"} {
			buf.WriteString(`<input type="date" class="qz-date"`)
			writeAttr(buf, "name", data.InstanceID)
			writeAttr(buf, "data-range", suffix)
			if idx < len(values) {
				writeAttr(buf, "value", values[idx])
			}
			writeDisabled(buf, data)
			buf.WriteString(">\n")
		}
		return nil
	}
	buf.WriteString(`<input type="datetime-local" class="qz-date"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func timeRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="time" class="qz-time"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func rateRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	step := "1"
	if boolProp(data.Props, "allowHalf") {
		step = "0.5"
	}
	buf.WriteString(`<input type="number" class="qz-rate"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	writeAttr(buf, "min", "0")
	writeAttr(buf, "max", fmt.Sprint(numberProp(data.Props, "max", 5)))
	writeAttr(buf, "step", step)
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func scoreRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="range" class="qz-score"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	writeAttr(buf, "min", fmt.Sprint(numberProp(data.Props, "min", 0)))
	writeAttr(buf, "max", fmt.Sprint(numberProp(data.Props, "max", 10)))
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func npsRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	current := valueString(data.Value)
	buf.WriteString(`<div class="qz-nps">` + "\n")
	for score := 0; score <= 10; score++ {
		label := fmt.Sprint(score)
		buf.WriteString(`  <label class="qz-nps-step"><input type="radio"`)
		writeAttr(buf, "name", data.InstanceID)
		writeAttr(buf, "value", label)
		if current == label {
			buf.WriteString(" checked")
		}
		writeDisabled(buf, data)
		buf.WriteString("> ")
		buf.WriteString(label)
		buf.WriteString("</label>\n")
	}
	buf.WriteString("</div>\n")
	return nil
}

func matrixRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	rows := optionsProp(data.Props, "rows")
	columns := optionsProp(data.Props, "columns")
	inputType := "radio"
	if boolProp(data.Props, "multiple") {
		inputType = "checkbox"
	}

	selections := map[string][]string{}
	if m, ok := data.Value.(map[string]any); ok {
		for row, picked := range m {
			if list := valueStrings(picked); list != nil {
				selections[row] = list
			} else {
				selections[row] = []string{valueString(picked)}
			}
		}
	}

	buf.WriteString(`<table class="qz-matrix">` + "\n<thead><tr><th></th>")
	for _, column := range columns {
		buf.WriteString("<th>")
		buf.WriteString(html.EscapeString(column))
		buf.WriteString("</th>")
	}
	buf.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		buf.WriteString("<tr><th>")
		buf.WriteString(html.EscapeString(row))
		buf.WriteString("</th>")
		for _, column := range columns {
			buf.WriteString("<td><input")
			writeAttr(buf, "type", inputType)
			writeAttr(buf, "name", data.InstanceID+"."+row)
			writeAttr(buf, "value", column)
			if contains(selections[row], column) {
				buf.WriteString(" checked")
			}
			writeDisabled(buf, data)
			buf.WriteString("></td>")
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</tbody>\n</table>\n")
	return nil
}

func signatureRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<canvas class="qz-signature"`)
	writeAttr(buf, "data-for", data.InstanceID)
	buf.WriteString("></canvas>\n")
	buf.WriteString(`<input type="hidden"`)
	writeAttr(buf, "name", data.InstanceID)
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	buf.WriteString(">\n")
	return nil
}

func colorRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="color" class="qz-color"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if v := valueString(data.Value); v != "" {
		writeAttr(buf, "value", v)
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func emojiRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	options := optionsProp(data.Props, "options")
	if len(options) == 0 {
		options = []string{"😞", "😐", "🙂", "😄", "🤩"}
	}
	current := valueString(data.Value)
	buf.WriteString(`<div class="qz-emoji">` + "\n")
	for _, glyph := range options {
		buf.WriteString(`  <label class="qz-emoji-option"><input type="radio"`)
		writeAttr(buf, "name", data.InstanceID)
		writeAttr(buf, "value", glyph)
		if current == glyph {
			buf.WriteString(" checked")
		}
		writeDisabled(buf, data)
		buf.WriteString("> ")
		buf.WriteString(glyph)
		buf.WriteString("</label>\n")
	}
	buf.WriteString("</div>\n")
	return nil
}

func uploadRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="file" class="qz-upload"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	if numberProp(data.Props, "maxFiles", 1) > 1 {
		buf.WriteString(" multiple")
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}

func wordCloudRenderer(buf *bytes.Buffer, data RenderData) error {
	writeQuestionLabel(buf, data)
	buf.WriteString(`<input type="text" class="qz-word-cloud"`)
	writeAttr(buf, "id", controlID(data.InstanceID))
	writeAttr(buf, "name", data.InstanceID)
	writeAttr(buf, "placeholder", "word, word, word")
	if words := valueStrings(data.Value); len(words) > 0 {
		writeAttr(buf, "value", strings.Join(words, ", "))
	}
	writeDisabled(buf, data)
	buf.WriteString(">\n")
	return nil
}
