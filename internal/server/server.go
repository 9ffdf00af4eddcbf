package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/render"
)

// AnswerStore is the persistence surface the handlers depend on.
type AnswerStore interface {
	SaveSubmission(ctx context.Context, record answers.SubmissionRecord) (string, error)
	QueryPage(ctx context.Context, questionID string, page, pageSize int) (int, []map[string]any, error)
}

// Option configures the server.
type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQuestionnaire hosts a questionnaire's publish page at GET /question.
func WithQuestionnaire(q questionnaire.Questionnaire, page *render.PageRenderer) Option {
	return func(s *Server) {
		if page != nil {
			s.hosted = &q
			s.page = page
		}
	}
}

// Server wires the answer store and optional publish page into HTTP
// handlers.
type Server struct {
	store  AnswerStore
	logger *slog.Logger
	hosted *questionnaire.Questionnaire
	page   *render.PageRenderer
	now    func() time.Time
}

// New constructs a server over the given store.
func New(store AnswerStore, options ...Option) *Server {
	s := &Server{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/answer", s.handleSubmit)
	r.Get("/api/stat/{questionId}", s.handleStats)
	if s.hosted != nil {
		r.Get("/question", s.handlePage)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	return r
}

type submitRequest struct {
	QuestionID string                `json:"questionId"`
	AnswerList []answers.AnswerEntry `json:"answerList"`
	Duration   int64                 `json:"duration"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	record := answers.SubmissionRecord{
		QuestionID:         req.QuestionID,
		Entries:            req.AnswerList,
		ElapsedFillSeconds: req.Duration,
		SubmittedAt:        s.now(),
	}
	id, err := s.store.SaveSubmission(r.Context(), record)
	if err != nil {
		s.logger.Error("save submission failed", "question_id", req.QuestionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save submission")
		return
	}

	s.logger.Info("submission saved",
		"question_id", req.QuestionID,
		"submission_id", id,
		"answers", len(req.AnswerList))
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionId")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 10
	}

	total, list, err := s.store.QueryPage(r.Context(), questionID, page, pageSize)
	if err != nil {
		s.logger.Error("stats query failed", "question_id", questionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query statistics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total": total,
		"list":  list,
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := s.page.Render(r.Context(), *s.hosted, render.ModeAnswer, render.Config{}, nil)
	if err != nil {
		s.logger.Error("page render failed", "question_id", s.hosted.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
