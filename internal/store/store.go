package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
)

const schema = `
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answer (
    submission_id TEXT NOT NULL REFERENCES submission(id) ON DELETE CASCADE,
    instance_id TEXT NOT NULL,
    type_id TEXT NOT NULL,
    value TEXT
);

CREATE INDEX IF NOT EXISTS idx_submission_question ON submission(question_id, submitted_at);
CREATE INDEX IF NOT EXISTS idx_answer_submission ON answer(submission_id);
`

// Store wraps the SQLite connection for submissions.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at path and ensures the schema
// exists. Safe to call against an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSubmission writes one record and its answers in a transaction,
// returning the generated submission id.
func (s *Store) SaveSubmission(ctx context.Context, record answers.SubmissionRecord) (string, error) {
	if record.QuestionID == "" {
		return "", fmt.Errorf("store: question id is required")
	}

	id := uuid.NewString()
	submittedAt := record.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO submission (id, question_id, duration_seconds, submitted_at)
		VALUES (?, ?, ?, ?)
	`, id, record.QuestionID, record.ElapsedFillSeconds, submittedAt.UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("store: insert submission: %w", err)
	}

	for _, entry := range record.Entries {
		var value any
		if entry.Value != nil {
			encoded, err := json.Marshal(entry.Value)
			if err != nil {
				return "", fmt.Errorf("store: encode answer %q: %w", entry.InstanceID, err)
			}
			value = string(encoded)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO answer (submission_id, instance_id, type_id, value)
			VALUES (?, ?, ?, ?)
		`, id, entry.InstanceID, entry.Type, value); err != nil {
			return "", fmt.Errorf("store: insert answer %q: %w", entry.InstanceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit submission: %w", err)
	}
	return id, nil
}

// QueryPage returns the total submission count for a question plus one page
// of rows, newest first. Each row maps "_id" and instanceId keys to decoded
// values; a null stored value decodes to nil.
func (s *Store) QueryPage(ctx context.Context, questionID string, page, pageSize int) (int, []map[string]any, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM submission WHERE question_id = ?
	`, questionID).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("store: count submissions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM submission
		WHERE question_id = ?
		ORDER BY submitted_at DESC, id
		LIMIT ? OFFSET ?
	`, questionID, pageSize, (page-1)*pageSize)
	if err != nil {
		return 0, nil, fmt.Errorf("store: query submissions: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, pageSize)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("store: scan submission id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("store: iterate submissions: %w", err)
	}

	list := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		row, err := s.loadAnswers(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		list = append(list, row)
	}
	return total, list, nil
}

func (s *Store) loadAnswers(ctx context.Context, submissionID string) (map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, value FROM answer WHERE submission_id = ?
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("store: query answers: %w", err)
	}
	defer rows.Close()

	out := map[string]any{"_id": submissionID}
	for rows.Next() {
		var (
			instanceID string
			raw        sql.NullString
		)
		if err := rows.Scan(&instanceID, &raw); err != nil {
			return nil, fmt.Errorf("store: scan answer: %w", err)
		}
		if !raw.Valid {
			out[instanceID] = nil
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(raw.String), &value); err != nil {
			return nil, fmt.Errorf("store: decode answer %q: %w", instanceID, err)
		}
		out[instanceID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate answers: %w", err)
	}
	return out, nil
}
