package render

import (
	"fmt"
	"strings"
)

// Mode selects which descriptor role a dispatch call produces.
type Mode int

const (
	// ModeDesign renders the type's property-editing affordance.
	ModeDesign Mode = iota
	// ModePreview renders the display role forced non-interactive, letting
	// the author see a realistic rendering without being able to answer.
	ModePreview
	// ModeAnswer renders the display role, interactive only for types
	// classified as answer-collecting.
	ModeAnswer
)

func (m Mode) String() string {
	switch m {
	case ModeDesign:
		return "design"
	case ModePreview:
		return "preview"
	case ModeAnswer:
		return "answer"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name onto its Mode value.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "design":
		return ModeDesign, nil
	case "preview":
		return ModePreview, nil
	case "answer":
		return ModeAnswer, nil
	default:
		return 0, fmt.Errorf("render: unknown mode %q", raw)
	}
}
