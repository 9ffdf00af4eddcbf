package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/answers"
)

const defaultTimeout = 15 * time.Second

// Option configures the client before construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client is the HTTP client for the answer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client can act as the collector's submission sink.
var _ answers.Sink = (*Client)(nil)

// New constructs a client for the answer service at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

type submitPayload struct {
	QuestionID string                `json:"questionId"`
	AnswerList []answers.AnswerEntry `json:"answerList"`
	Duration   int64                 `json:"duration"`
}

// SubmitAnswers posts one completed session. The response body is an opaque
// acknowledgment; only the status code matters.
func (c *Client) SubmitAnswers(ctx context.Context, record answers.SubmissionRecord) error {
	payload := submitPayload{
		QuestionID: record.QuestionID,
		AnswerList: record.Entries,
		Duration:   record.ElapsedFillSeconds,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/answer", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: submit answers: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("client: submit answers: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// StatPage is one page of stored answers. Each row maps "_id" plus
// instanceId keys to stored values.
type StatPage struct {
	Total int              `json:"total"`
	List  []map[string]any `json:"list"`
}

// QueryStats fetches one page of stored answers for a question. Pages are
// independent and safely retryable; the server holds no cursor state.
func (c *Client) QueryStats(ctx context.Context, questionID string, page, pageSize int) (StatPage, error) {
	if questionID == "" {
		return StatPage{}, fmt.Errorf("client: question id is required")
	}

	reqURL, err := url.Parse(c.baseURL + "/api/stat/" + url.PathEscape(questionID))
	if err != nil {
		return StatPage{}, fmt.Errorf("client: build stats url: %w", err)
	}
	q := reqURL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return StatPage{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatPage{}, fmt.Errorf("client: query stats: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatPage{}, fmt.Errorf("client: query stats: unexpected status %d", resp.StatusCode)
	}

	var pageData StatPage
	if err := json.NewDecoder(resp.Body).Decode(&pageData); err != nil {
		return StatPage{}, fmt.Errorf("client: decode stats page: %w", err)
	}
	return pageData, nil
}
