package fill

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// scriptedDriver replays canned responses and records everything shown.
type scriptedDriver struct {
	inputs  []string
	selects []int
	multis  [][]int
	info    []string

	abortOn string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.abortOn != "" && cfg.Message == d.abortOn {
		return "", ErrAborted
	}
	if len(d.inputs) == 0 {
		return "", nil
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		return nil, nil
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *scriptedDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func fillQuestionnaire() questionnaire.Questionnaire {
	return questionnaire.Questionnaire{ID: "q-100", Title: "Customer Survey", Instances: []questionnaire.Instance{
		{InstanceID: "t1", Type: material.TypeTitle, Visible: true, Props: material.PropMap{"text": "Welcome"}},
		{InstanceID: "c1", Type: material.TypeInput, Visible: true, Props: material.PropMap{"title": "Your name"}},
		{InstanceID: "c2", Type: material.TypeRadio, Visible: true, Props: material.PropMap{
			"title": "Satisfied?", "options": []any{"Yes", "No"},
		}},
		{InstanceID: "c3", Type: material.TypeCheckbox, Visible: true, Props: material.PropMap{
			"title": "Topics", "options": []any{"a", "b", "c"},
		}},
		{InstanceID: "c4", Type: material.TypeNPS, Visible: true, Props: material.PropMap{"title": "Recommend us?"}},
		{InstanceID: "hidden", Type: material.TypeInput, Visible: false},
	}}
}

func TestSessionRunCollectsAnswers(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Ada"},
		selects: []int{1, 9},
		multis:  [][]int{{0, 2}},
	}
	s := NewSession(nil, fillQuestionnaire(), WithDriver(driver))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"c1": "Ada",
		"c2": "No",
		"c3": []any{"a", "c"},
		"c4": float64(9),
	}
	if diff := cmp.Diff(want, s.Collector().Values()); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.info) == 0 || driver.info[0] != "Customer Survey" {
		t.Fatalf("expected questionnaire title shown first, got %v", driver.info)
	}
	foundWelcome := false
	for _, msg := range driver.info {
		if msg == "Welcome" {
			foundWelcome = true
		}
	}
	if !foundWelcome {
		t.Fatalf("display instance text not shown: %v", driver.info)
	}
}

func TestSessionAbortPreservesCollected(t *testing.T) {
	q := questionnaire.Questionnaire{ID: "q-1", Instances: []questionnaire.Instance{
		{InstanceID: "c1", Type: material.TypeInput, Visible: true, Props: material.PropMap{"title": "First"}},
		{InstanceID: "c2", Type: material.TypeInput, Visible: true, Props: material.PropMap{"title": "Second"}},
	}}
	driver := &scriptedDriver{inputs: []string{"kept"}, abortOn: "Second"}
	s := NewSession(nil, q, WithDriver(driver))

	if err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if raw, _ := s.Collector().Value("c1"); raw != "kept" {
		t.Fatalf("collected value lost on abort: %#v", raw)
	}
}

func TestSessionSubmitEndToEnd(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Ada"},
		selects: []int{0, 10},
		multis:  [][]int{{1}},
	}
	s := NewSession(nil, fillQuestionnaire(), WithDriver(driver))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var record answers.SubmissionRecord
	if _, err := s.Submit(context.Background(), answers.SinkFunc(func(_ context.Context, r answers.SubmissionRecord) error {
		record = r
		return nil
	})); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if record.QuestionID != "q-100" {
		t.Fatalf("unexpected question id %q", record.QuestionID)
	}
	if len(record.Entries) != 4 {
		t.Fatalf("expected 4 entries (hidden skipped), got %d", len(record.Entries))
	}
}

func TestSessionMatrixPrompts(t *testing.T) {
	q := questionnaire.Questionnaire{ID: "q-1", Instances: []questionnaire.Instance{
		{InstanceID: "m1", Type: material.TypeMatrix, Visible: true, Props: material.PropMap{
			"title":   "Rate each",
			"rows":    []any{"speed", "quality"},
			"columns": []any{"bad", "ok", "good"},
		}},
	}}
	driver := &scriptedDriver{selects: []int{2, 1}}
	s := NewSession(nil, q, WithDriver(driver))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	raw, _ := s.Collector().Value("m1")
	want := map[string]any{"speed": "good", "quality": "ok"}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Fatalf("matrix answer mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionDateRangePrompts(t *testing.T) {
	q := questionnaire.Questionnaire{ID: "q-1", Instances: []questionnaire.Instance{
		{InstanceID: "d1", Type: material.TypeDate, Visible: true, Props: material.PropMap{
			"title": "Stay", "range": true,
		}},
		{InstanceID: "d2", Type: material.TypeDate, Visible: true, Props: material.PropMap{
			"title": "Birthday",
		}},
	}}
	driver := &scriptedDriver{inputs: []string{"2024-03-01", "2024-03-08", "1990-06-15"}}
	s := NewSession(nil, q, WithDriver(driver))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	raw, _ := s.Collector().Value("d1")
	if diff := cmp.Diff([]any{"2024-03-01", "2024-03-08"}, raw); diff != "" {
		t.Fatalf("range answer mismatch (-want +got):\n%s", diff)
	}
	if single, _ := s.Collector().Value("d2"); single != "1990-06-15" {
		t.Fatalf("single date answer = %#v", single)
	}

	var record answers.SubmissionRecord
	if _, err := s.Submit(context.Background(), answers.SinkFunc(func(_ context.Context, r answers.SubmissionRecord) error {
		record = r
		return nil
	})); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for _, entry := range record.Entries {
		if entry.InstanceID == "d1" {
			if diff := cmp.Diff([]any{"2024-03-01", "2024-03-08"}, entry.Value); diff != "" {
				t.Fatalf("normalized range mismatch (-want +got):\n%s", diff)
			}
		}
	}
}
