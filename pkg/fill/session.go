package fill

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// Option configures a session before it runs.
type Option func(*Session)

// WithDriver swaps the prompt driver, typically for tests.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// Session walks one questionnaire in canvas order, prompting for every
// visible interactive instance and recording raw values in the collector.
type Session struct {
	registry  *material.Registry
	driver    PromptDriver
	collector *answers.Collector
	q         questionnaire.Questionnaire
}

// NewSession prepares a fill session. A nil registry falls back to the
// built-in defaults; the default driver prompts on the terminal.
func NewSession(registry *material.Registry, q questionnaire.Questionnaire, options ...Option) *Session {
	if registry == nil {
		registry = material.NewDefaultRegistry()
	}
	s := &Session{
		registry:  registry,
		driver:    NewSurveyDriver(),
		collector: answers.NewCollector(registry, q),
		q:         q,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Collector exposes the session's answer state.
func (s *Session) Collector() *answers.Collector {
	return s.collector
}

// Run prompts through every visible instance. Aborting a prompt stops the
// walk and surfaces ErrAborted; values collected so far stay in place.
func (s *Session) Run(ctx context.Context) error {
	if s.q.Title != "" {
		if err := s.driver.Info(ctx, s.q.Title); err != nil {
			return err
		}
	}
	if s.q.Description != "" {
		if err := s.driver.Info(ctx, s.q.Description); err != nil {
			return err
		}
	}

	for _, inst := range s.q.Active() {
		if !inst.Visible {
			continue
		}
		desc, ok := s.registry.Lookup(inst.Type)
		if !ok {
			continue
		}
		props := mergeProps(desc.DefaultProps, inst.Props)
		if !desc.Interactive {
			if err := s.showDisplay(ctx, inst.Type, props); err != nil {
				return err
			}
			continue
		}
		value, err := s.prompt(ctx, inst, props)
		if err != nil {
			return err
		}
		s.collector.Set(inst.InstanceID, value)
	}
	return nil
}

// Submit normalizes the collected answers and hands them to the sink.
func (s *Session) Submit(ctx context.Context, sink answers.Sink) (answers.SubmissionRecord, error) {
	return s.collector.Submit(ctx, sink)
}

func (s *Session) showDisplay(ctx context.Context, t material.Type, props material.PropMap) error {
	switch t {
	case material.TypeDivider:
		return s.driver.Info(ctx, strings.Repeat("-", 24))
	default:
		if text := stringProp(props, "text", ""); text != "" {
			return s.driver.Info(ctx, text)
		}
		return nil
	}
}

func (s *Session) prompt(ctx context.Context, inst questionnaire.Instance, props material.PropMap) (any, error) {
	message := stringProp(props, "title", string(inst.Type))
	required := props.Required()

	switch inst.Type {
	case material.TypeRadio, material.TypeSelect:
		options := optionsProp(props)
		if len(options) == 0 {
			return nil, nil
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, nil
		}
		return options[idx], nil

	case material.TypeCheckbox, material.TypeImageChoice:
		options := optionsProp(props)
		picks, err := s.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: options})
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(picks))
		for _, idx := range picks {
			if idx >= 0 && idx < len(options) {
				out = append(out, options[idx])
			}
		}
		return out, nil

	case material.TypeNumber, material.TypeScore, material.TypeRate:
		text, err := s.driver.Input(ctx, InputConfig{
			Message:   message,
			Validator: numberValidator(required),
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, nil
		}
		return n, nil

	case material.TypeNPS:
		options := make([]string, 11)
		for i := range options {
			options[i] = strconv.Itoa(i)
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: 11})
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, nil
		}
		return float64(idx), nil

	case material.TypeDate:
		if ranged, ok := props["range"].(bool); ok && ranged {
			return s.promptDateRange(ctx, message, required)
		}
		return s.driver.Input(ctx, InputConfig{
			Message:   message,
			Help:      "YYYY-MM-DD or YYYY-MM-DD HH:mm:ss",
			Validator: dateValidator(required),
		})

	case material.TypeMatrix:
		return s.promptMatrix(ctx, message, props)

	case material.TypeUpload, material.TypeWordCloud:
		text, err := s.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "comma-separated values",
		})
		if err != nil {
			return nil, err
		}
		return splitList(text), nil

	default:
		// input, textarea, time, signature, color, emoji and any custom
		// scalar type fall back to free text.
		var validator func(string) error
		if required {
			validator = nonEmptyValidator
		}
		return s.driver.Input(ctx, InputConfig{Message: message, Validator: validator})
	}
}

func (s *Session) promptDateRange(ctx context.Context, message string, required bool) (any, error) {
	start, err := s.driver.Input(ctx, InputConfig{
		Message:   message + " (start)",
		Help:      "YYYY-MM-DD",
		Validator: dateValidator(required),
	})
	if err != nil {
		return nil, err
	}
	end, err := s.driver.Input(ctx, InputConfig{
		Message:   message + " (end)",
		Help:      "YYYY-MM-DD",
		Validator: dateValidator(required),
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return nil, nil
	}
	return []any{start, end}, nil
}

func (s *Session) promptMatrix(ctx context.Context, message string, props material.PropMap) (any, error) {
	rows := listProp(props, "rows")
	columns := listProp(props, "columns")
	if len(rows) == 0 || len(columns) == 0 {
		return nil, nil
	}
	multiple := false
	if v, ok := props["multiple"].(bool); ok {
		multiple = v
	}

	out := make(map[string]any, len(rows))
	for _, row := range rows {
		rowMessage := fmt.Sprintf("%s / %s", message, row)
		if multiple {
			picks, err := s.driver.MultiSelect(ctx, SelectConfig{Message: rowMessage, Options: columns})
			if err != nil {
				return nil, err
			}
			selected := make([]any, 0, len(picks))
			for _, idx := range picks {
				if idx >= 0 && idx < len(columns) {
					selected = append(selected, columns[idx])
				}
			}
			out[row] = selected
			continue
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: rowMessage, Options: columns})
		if err != nil {
			return nil, err
		}
		if idx >= 0 && idx < len(columns) {
			out[row] = columns[idx]
		}
	}
	return out, nil
}

func nonEmptyValidator(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("an answer is required")
	}
	return nil
}

func numberValidator(required bool) func(string) error {
	return func(text string) error {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			if required {
				return fmt.Errorf("an answer is required")
			}
			return nil
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return fmt.Errorf("enter a number")
		}
		return nil
	}
}

func dateValidator(required bool) func(string) error {
	return func(text string) error {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			if required {
				return fmt.Errorf("an answer is required")
			}
			return nil
		}
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
			if _, err := time.Parse(layout, trimmed); err == nil {
				return nil
			}
		}
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
}

func splitList(text string) []any {
	parts := strings.Split(text, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringProp(props material.PropMap, key, fallback string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func optionsProp(props material.PropMap) []string {
	return listProp(props, "options")
}

func listProp(props material.PropMap, key string) []string {
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
			if text, ok := item.(string); ok {
				out = append(out, text)
			}
		}
		return out
	default:
		return nil
	}
}

func mergeProps(defaults, live material.PropMap) material.PropMap {
	merged := defaults.Clone()
	if merged == nil {
		merged = make(material.PropMap, len(live))
	}
	for key, value := range live {
		merged[key] = value
	}
	return merged
}
