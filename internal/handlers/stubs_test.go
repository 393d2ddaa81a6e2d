package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
	"lecture-companion/internal/session"
)

type stubSessions struct {
	s       *session.Session
	saves   int
	cleared bool
	loadErr error
	saveErr error
}

func (m *stubSessions) Load(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.s == nil {
		m.s = session.New()
	}
	return m.s, nil
}

func (m *stubSessions) Save(ctx context.Context, s *session.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.s = s
	return nil
}

func (m *stubSessions) Clear(w http.ResponseWriter, r *http.Request) error {
	m.cleared = true
	m.s = nil
	return nil
}

// stubLectureStore maps subject → lesson → text.
type stubLectureStore map[string]map[string]string

func (s stubLectureStore) ListSubjects(ctx context.Context) ([]string, error) {
	var out []string
	for subject := range s {
		out = append(out, subject)
	}
	return out, nil
}

func (s stubLectureStore) ListLessons(ctx context.Context, subject string) ([]string, error) {
	lessons, ok := s[subject]
	if !ok {
		return nil, lecture.ErrNotFound
	}
	var out []string
	for lesson := range lessons {
		out = append(out, lesson)
	}
	return out, nil
}

func (s stubLectureStore) LoadText(ctx context.Context, subject, lesson string) (string, error) {
	text, ok := s[subject][lesson]
	if !ok {
		return "", lecture.ErrNotFound
	}
	return text, nil
}

func testLog() *logger.Logger {
	return logger.Nop()
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "test-request")
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) models.APIError {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Expected status %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
	var body models.ErrorResponse
	decodeBody(t, rr, &body)
	if body.Error.Code != code {
		t.Errorf("Expected error code %q, got %q", code, body.Error.Code)
	}
	if body.Error.RequestID != "test-request" {
		t.Errorf("Expected request ID echoed, got %q", body.Error.RequestID)
	}
	return body.Error
}
