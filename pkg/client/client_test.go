package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
)

func TestSubmitAnswers(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/answer" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	record := answers.SubmissionRecord{
		QuestionID: "q-100",
		Entries: []answers.AnswerEntry{
			{InstanceID: "c1", Type: material.TypeCheckbox, Value: []any{"opt1"}},
			{InstanceID: "c2", Type: material.TypeInput, Value: nil},
		},
		ElapsedFillSeconds: 95,
		SubmittedAt:        time.Now(),
	}
	if err := c.SubmitAnswers(context.Background(), record); err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}

	want := map[string]any{
		"questionId": "q-100",
		"answerList": []any{
			map[string]any{"instanceId": "c1", "typeId": "question-checkbox", "value": []any{"opt1"}},
			map[string]any{"instanceId": "c2", "typeId": "question-input", "value": nil},
		},
		"duration": 95.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitAnswersErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.SubmitAnswers(context.Background(), answers.SubmissionRecord{QuestionID: "q-1"}); err == nil {
		t.Fatalf("expected error on 400 response")
	}
}

func TestQueryStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stat/q-100" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if page := r.URL.Query().Get("page"); page != "2" {
			t.Errorf("unexpected page %q", page)
		}
		if size := r.URL.Query().Get("pageSize"); size != "10" {
			t.Errorf("unexpected pageSize %q", size)
		}
		_ = json.NewEncoder(w).Encode(StatPage{
			Total: 15,
			List: []map[string]any{
				{"_id": "s11", "c1": "Ada"},
			},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	page, err := c.QueryStats(context.Background(), "q-100", 2, 10)
	if err != nil {
		t.Fatalf("QueryStats: %v", err)
	}
	want := StatPage{Total: 15, List: []map[string]any{{"_id": "s11", "c1": "Ada"}}}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	if _, err := New("   "); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
