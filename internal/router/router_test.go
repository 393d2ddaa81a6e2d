package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/handlers"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/llm"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
	"lecture-companion/internal/quiz"
	"lecture-companion/internal/session"
)

func newTestServer(t *testing.T, gen llm.Generator, perMinute int) *httptest.Server {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "physics"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "physics", "optics.txt"), []byte("Light bends in glass."), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logger.Nop()
	store := lecture.NewFileStore(root)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), "router-test-secret-0123456789abc", time.Hour, false)

	h := Handlers{
		Lecture: handlers.NewLectureHandler(store, log),
		Session: handlers.NewSessionHandler(sessions, store, log),
		Chat:    handlers.NewChatHandler(sessions, chat.NewService(gen), log),
		Quiz:    handlers.NewQuizHandler(sessions, quiz.NewService(gen, log, 1), log),
	}
	srv := httptest.NewServer(New(h, Options{FrontendURL: "http://localhost:5173", GenerationPerMinute: perMinute}))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t      *testing.T
	base   string
	cookie *http.Cookie
}

func (c *client) do(method, path string, body interface{}) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	for _, ck := range resp.Cookies() {
		c.cookie = ck
	}
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGenerator(), 0)
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on every response")
	}
}

func TestSessionFlowAcrossRequests(t *testing.T) {
	gen := llm.NewMockGenerator(
		llm.MockResponse{Text: "It refracts."},
		llm.MockResponse{Text: "Question (English): What bends light?\nQuestion (Arabic): ما الذي يحني الضوء؟\nAnswer: Glass"},
	)
	srv := newTestServer(t, gen, 0)
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodPut, "/api/v1/session/lecture", models.SelectLectureRequest{Subject: "physics", Lesson: "optics"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Select lecture: expected 200, got %d", resp.StatusCode)
	}
	if c.cookie == nil {
		t.Fatal("Expected a session cookie")
	}

	resp = c.do(http.MethodPost, "/api/v1/chat/messages", models.ChatRequest{Message: "What happens to light?"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Chat: expected 200, got %d", resp.StatusCode)
	}

	resp = c.do(http.MethodGet, "/api/v1/chat/messages", nil)
	var history models.ChatHistoryResponse
	json.NewDecoder(resp.Body).Decode(&history)
	if len(history.Turns) != 2 {
		t.Fatalf("Expected 2 persisted turns, got %d", len(history.Turns))
	}

	resp = c.do(http.MethodPost, "/api/v1/quiz/start", nil)
	var view models.QuizView
	json.NewDecoder(resp.Body).Decode(&view)
	if view.Total != 1 || view.Question != "What bends light?" {
		t.Fatalf("Unexpected quiz view: %+v", view)
	}

	resp = c.do(http.MethodGet, "/api/v1/session", nil)
	var sess models.SessionResponse
	json.NewDecoder(resp.Body).Decode(&sess)
	if sess.Mode != "quiz" || sess.ChatTurns != 2 {
		t.Errorf("Unexpected session: %+v", sess)
	}
}

func TestGenerationRoutesRateLimited(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGenerator(), 1)
	c := &client{t: t, base: srv.URL}

	first := c.do(http.MethodPost, "/api/v1/chat/messages", models.ChatRequest{Message: "hi"})
	if first.StatusCode == http.StatusTooManyRequests {
		t.Fatal("First request should not be limited")
	}
	second := c.do(http.MethodPost, "/api/v1/quiz/answer", models.AnswerRequest{Answer: "x"})
	if second.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", second.StatusCode)
	}

	// Non-generating routes are never limited.
	resp := c.do(http.MethodGet, "/api/v1/subjects", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for catalog, got %d", resp.StatusCode)
	}
}
