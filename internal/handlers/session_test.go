package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/models"
	"lecture-companion/internal/quiz"
	"lecture-companion/internal/session"
)

func TestSessionHandler_SelectLecture(t *testing.T) {
	sessions := &stubSessions{}
	h := NewSessionHandler(sessions, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.SelectLecture(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/lecture",
		models.SelectLectureRequest{Subject: "physics", Lesson: "optics"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.SessionResponse
	decodeBody(t, rr, &resp)
	if resp.Lecture == nil || resp.Lecture.Lesson != "optics" || resp.Lecture.Missing {
		t.Errorf("Unexpected lecture view: %+v", resp.Lecture)
	}
	if sessions.s.Lecture.Text != "Light bends in glass." {
		t.Errorf("Expected lecture text loaded, got %q", sessions.s.Lecture.Text)
	}
	if sessions.saves != 1 {
		t.Errorf("Expected one save, got %d", sessions.saves)
	}
}

func TestSessionHandler_SelectMissingLecture(t *testing.T) {
	s := session.New()
	s.SelectLecture(lecture.Context{Subject: "physics", Lesson: "optics", Text: "x"})
	s.Quiz = quiz.State{Bank: []quiz.Question{{PromptPrimary: "Q", PromptSecondary: "س", Answer: "A"}}}
	sessions := &stubSessions{s: s}
	h := NewSessionHandler(sessions, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.SelectLecture(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/lecture",
		models.SelectLectureRequest{Subject: "physics", Lesson: "relativity"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for missing lecture, got %d", rr.Code)
	}
	var resp models.SessionResponse
	decodeBody(t, rr, &resp)
	if !resp.Lecture.Missing {
		t.Error("Expected lecture flagged missing")
	}
	if resp.Lecture.Notice != "Error: Lecture file for physics, relativity not found." {
		t.Errorf("Unexpected notice: %q", resp.Lecture.Notice)
	}
	if !sessions.s.Quiz.Empty() {
		t.Error("Expected quiz reset when the lecture changes")
	}
}

func TestSessionHandler_SelectLectureValidation(t *testing.T) {
	h := NewSessionHandler(&stubSessions{}, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.SelectLecture(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/lecture",
		models.SelectLectureRequest{Subject: "physics"}))

	apiErr := expectError(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
	if apiErr.Fields["lesson"] == "" {
		t.Errorf("Expected lesson field error, got %v", apiErr.Fields)
	}
}

func TestSessionHandler_SetLocale(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		status int
		want   locale.Tag
	}{
		{"arabic", "ar", http.StatusOK, locale.Arabic},
		{"upper case english", "EN", http.StatusOK, locale.English},
		{"unsupported", "fr", http.StatusBadRequest, locale.English},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sessions := &stubSessions{}
			h := NewSessionHandler(sessions, testLectures, testLog())

			rr := httptest.NewRecorder()
			h.SetLocale(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/locale", models.SetLocaleRequest{Locale: tc.locale}))

			if rr.Code != tc.status {
				t.Fatalf("Expected %d, got %d", tc.status, rr.Code)
			}
			if tc.status == http.StatusOK && sessions.s.Locale != tc.want {
				t.Errorf("Expected locale %q, got %q", tc.want, sessions.s.Locale)
			}
		})
	}
}

func TestSessionHandler_SetMode(t *testing.T) {
	sessions := &stubSessions{}
	h := NewSessionHandler(sessions, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.SetMode(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/mode", models.SetModeRequest{Mode: "quiz"}))
	if rr.Code != http.StatusOK || sessions.s.Mode != session.ModeQuiz {
		t.Fatalf("Expected quiz mode, got %d / %q", rr.Code, sessions.s.Mode)
	}

	rr = httptest.NewRecorder()
	h.SetMode(rr, jsonRequest(t, http.MethodPut, "/api/v1/session/mode", models.SetModeRequest{Mode: "flashcards"}))
	expectError(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestSessionHandler_Delete(t *testing.T) {
	sessions := &stubSessions{s: session.New()}
	h := NewSessionHandler(sessions, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.Delete(rr, jsonRequest(t, http.MethodDelete, "/api/v1/session", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rr.Code)
	}
	if !sessions.cleared {
		t.Error("Expected session cleared")
	}
}

func TestSessionHandler_LoadFailure(t *testing.T) {
	sessions := &stubSessions{loadErr: http.ErrServerClosed}
	h := NewSessionHandler(sessions, testLectures, testLog())

	rr := httptest.NewRecorder()
	h.Get(rr, jsonRequest(t, http.MethodGet, "/api/v1/session", nil))
	expectError(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}
