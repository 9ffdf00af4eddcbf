package material

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// question types. Each entry is the descriptor contribution the corresponding
// question-type package would make at process start.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	register := func(desc Descriptor) {
		if desc.RenderEditor == nil {
			desc.RenderEditor = propEditor(desc.DefaultProps)
		}
		registry.MustRegister(desc)
	}

	register(Descriptor{
		Type:         TypeTitle,
		Title:        "Title",
		Group:        GroupTextDisplay,
		DefaultProps: PropMap{"text": "Title", "level": float64(1)},
		Render:       titleRenderer,
	})
	register(Descriptor{
		Type:         TypeParagraph,
		Title:        "Paragraph",
		Group:        GroupTextDisplay,
		DefaultProps: PropMap{"text": "", "align": "left"},
		Render:       paragraphRenderer,
	})
	register(Descriptor{
		Type:         TypeDivider,
		Title:        "Divider",
		Group:        GroupTextDisplay,
		DefaultProps: PropMap{},
		Render:       dividerRenderer,
	})

	register(Descriptor{
		Type:         TypeInput,
		Title:        "Text Input",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Question", "placeholder": "", "required": false},
		Render:       inputRenderer,
	})
	register(Descriptor{
		Type:         TypeTextarea,
		Title:        "Long Text",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Question", "placeholder": "", "rows": float64(4), "required": false},
		Render:       textareaRenderer,
	})
	register(Descriptor{
		Type:         TypeNumber,
		Title:        "Number",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Question", "required": false},
		Render:       numberRenderer,
	})
	register(Descriptor{
		Type:         TypeDate,
		Title:        "Date",
		Group:        GroupUserInput,
		Interactive:  true,
		Kind:         ValueDate,
		DefaultProps: PropMap{"title": "Pick a date", "range": false, "required": false},
		Render:       dateRenderer,
	})
	register(Descriptor{
		Type:         TypeTime,
		Title:        "Time",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Pick a time", "required": false},
		Render:       timeRenderer,
	})
	register(Descriptor{
		Type:         TypeSignature,
		Title:        "Signature",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Sign here", "required": false},
		Render:       signatureRenderer,
	})
	register(Descriptor{
		Type:         TypeColor,
		Title:        "Color Picker",
		Group:        GroupUserInput,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Pick a color", "required": false},
		Render:       colorRenderer,
	})
	register(Descriptor{
		Type:         TypeUpload,
		Title:        "File Upload",
		Group:        GroupUserInput,
		Interactive:  true,
		Kind:         ValueMulti,
		DefaultProps: PropMap{"title": "Upload files", "maxFiles": float64(3), "required": false},
		Render:       uploadRenderer,
	})
	register(Descriptor{
		Type:         TypeWordCloud,
		Title:        "Word Cloud",
		Group:        GroupUserInput,
		Interactive:  true,
		Kind:         ValueMulti,
		DefaultProps: PropMap{"title": "Your keywords", "maxWords": float64(10), "required": false},
		Render:       wordCloudRenderer,
	})

	register(Descriptor{
		Type:         TypeRadio,
		Title:        "Single Choice",
		Group:        GroupUserChoice,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Question", "options": []any{"Option 1", "Option 2"}, "required": false},
		Render:       choiceRenderer(false),
	})
	register(Descriptor{
		Type:         TypeCheckbox,
		Title:        "Multiple Choice",
		Group:        GroupUserChoice,
		Interactive:  true,
		Kind:         ValueMulti,
		DefaultProps: PropMap{"title": "Question", "options": []any{"Option 1", "Option 2"}, "required": false},
		Render:       choiceRenderer(true),
	})
	register(Descriptor{
		Type:         TypeSelect,
		Title:        "Dropdown",
		Group:        GroupUserChoice,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Question", "options": []any{"Option 1", "Option 2"}, "placeholder": "Select", "required": false},
		Render:       selectRenderer,
	})
	register(Descriptor{
		Type:         TypeImageChoice,
		Title:        "Image Choice",
		Group:        GroupUserChoice,
		Interactive:  true,
		Kind:         ValueMulti,
		DefaultProps: PropMap{"title": "Question", "options": []any{}, "required": false},
		Render:       imageChoiceRenderer,
	})
	register(Descriptor{
		Type:         TypeEmoji,
		Title:        "Emoji Picker",
		Group:        GroupUserChoice,
		Interactive:  true,
		DefaultProps: PropMap{"title": "How do you feel?", "options": []any{}, "required": false},
		Render:       emojiRenderer,
	})

	register(Descriptor{
		Type:         TypeRate,
		Title:        "Star Rating",
		Group:        GroupAdvanced,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Rate us", "max": float64(5), "allowHalf": false, "required": false},
		Render:       rateRenderer,
	})
	register(Descriptor{
		Type:         TypeScore,
		Title:        "Score",
		Group:        GroupAdvanced,
		Interactive:  true,
		DefaultProps: PropMap{"title": "Score", "min": float64(0), "max": float64(10), "required": false},
		Render:       scoreRenderer,
	})
	register(Descriptor{
		Type:         TypeNPS,
		Title:        "NPS",
		Group:        GroupAdvanced,
		Interactive:  true,
		DefaultProps: PropMap{"title": "How likely are you to recommend us?", "required": false},
		Render:       npsRenderer,
	})
	register(Descriptor{
		Type:        TypeMatrix,
		Title:       "Matrix",
		Group:       GroupAdvanced,
		Interactive: true,
		DefaultProps: PropMap{
			"title":    "Question",
			"rows":     []any{"Row 1", "Row 2"},
			"columns":  []any{"Column 1", "Column 2"},
			"multiple": false,
			"required": false,
		},
		Render: matrixRenderer,
	})

	return registry
}
