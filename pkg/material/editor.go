package material

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
)

// propEditor renders the design-time property form for an instance. Controls
// are derived from the descriptor's default props: booleans become toggles,
// numbers become number inputs, option lists become one-per-line textareas,
// everything else a text input. Edits write back through names shaped
// "props.<instanceId>.<key>" so the canvas surface can route them to the
// owning instance.
func propEditor(defaults PropMap) EditorRenderer {
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return func(buf *bytes.Buffer, data RenderData) error {
		buf.WriteString(`<fieldset class="qz-prop-editor">` + "\n")
		for _, key := range keys {
			value, ok := data.Props[key]
			if !ok {
				value = defaults[key]
			}
			writePropControl(buf, data.InstanceID, key, value)
		}
		buf.WriteString("</fieldset>\n")
		return nil
	}
}

func writePropControl(buf *bytes.Buffer, instanceID, key string, value any) {
	name := "props." + instanceID + "." + key
	buf.WriteString(`  <label class="qz-prop">`)
	buf.WriteString(html.EscapeString(key))
	buf.WriteString(" ")

	switch v := value.(type) {
	case bool:
		buf.WriteString(`<input type="checkbox"`)
		writeAttr(buf, "name", name)
		if v {
			buf.WriteString(" checked")
		}
		buf.WriteString(">")
	case float64, int, int64:
		buf.WriteString(`<input type="number"`)
		writeAttr(buf, "name", name)
		writeAttr(buf, "value", fmt.Sprint(v))
		buf.WriteString(">")
	case []any, []string:
		buf.WriteString("<textarea")
		writeAttr(buf, "name", name)
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(strings.Join(valueStrings(v), "\n")))
		buf.WriteString("</textarea>")
	default:
		buf.WriteString(`<input type="text"`)
		writeAttr(buf, "name", name)
		writeAttr(buf, "value", fmt.Sprint(v))
		buf.WriteString(">")
	}

	buf.WriteString("</label>\n")
}
