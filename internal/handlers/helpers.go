package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/llm"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
	"lecture-companion/internal/quiz"
	"lecture-companion/internal/session"
)

var errNoLecture = errors.New("no lecture selected")

// sessionManager loads and persists the caller's session.
type sessionManager interface {
	Load(w http.ResponseWriter, r *http.Request) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return false
	}
	return true
}

// loadSession writes the error response itself and returns nil on failure.
func loadSession(w http.ResponseWriter, r *http.Request, sessions sessionManager, log *logger.Logger) *session.Session {
	s, err := sessions.Load(w, r)
	if err != nil {
		log.Error("failed to load session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load session", r))
		return nil
	}
	return s
}

func saveSession(w http.ResponseWriter, r *http.Request, sessions sessionManager, s *session.Session, log *logger.Logger) bool {
	if err := sessions.Save(r.Context(), s); err != nil {
		log.Error("failed to save session", "session_id", s.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save session", r))
		return false
	}
	return true
}

// handleServiceError maps core errors onto the API error shape. Generation
// failures are reported with the locale's error text.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, loc locale.Locale, log *logger.Logger) {
	var rateLimit *llm.ErrRateLimit
	var unavailable *llm.ErrProviderUnavailable
	var invalid *llm.ErrInvalidResponse

	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{"message": "Message is required"}, r))
	case errors.Is(err, quiz.ErrEmptyQuestion):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{"question": "Question is required"}, r))
	case errors.Is(err, errNoLecture):
		writeJSON(w, http.StatusConflict, errorResp("INVALID_STATE", "Select a lecture first", r))
	case errors.Is(err, quiz.ErrNoQuestions):
		writeJSON(w, http.StatusConflict, errorResp("INVALID_STATE", loc.Strings.NoQuestions, r))
	case errors.Is(err, quiz.ErrNotEvaluated):
		writeJSON(w, http.StatusConflict, errorResp("INVALID_STATE", "Submit an answer first", r))
	case errors.Is(err, quiz.ErrNotDiscussing):
		writeJSON(w, http.StatusConflict, errorResp("INVALID_STATE", "Open the discussion first", r))
	case errors.As(err, &rateLimit), errors.As(err, &unavailable), errors.As(err, &invalid):
		log.Warn("generation failed", "error", err, "request_id", r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_ERROR", loc.Strings.ErrorResponse, r))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResp("TIMEOUT", loc.Strings.ErrorResponse, r))
	default:
		log.Error("unexpected error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}

func lectureView(lc *lecture.Context) *models.LectureView {
	if lc == nil {
		return nil
	}
	v := &models.LectureView{
		Subject:   lc.Subject,
		Lesson:    lc.Lesson,
		Missing:   lc.Missing,
		TextChars: len(lc.Text),
	}
	if lc.Missing {
		v.Notice = lc.Text
	}
	return v
}

func sessionResponse(s *session.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:        s.ID,
		Mode:      string(s.Mode),
		Locale:    s.Localization(),
		Lecture:   lectureView(s.Lecture),
		ChatTurns: len(s.Chat.Turns),
		UpdatedAt: s.UpdatedAt,
	}
}

func quizView(st *quiz.State, loc locale.Locale) models.QuizView {
	v := models.QuizView{
		Total:      len(st.Bank),
		Index:      st.CurrentIndex,
		Discussing: st.Discussing,
		Actions:    st.Actions(),
	}

	q, ok := st.Current()
	if !ok {
		v.Status = models.QuizStatusNoQuestions
		v.Notice = loc.Strings.NoQuestions
		return v
	}

	v.Label = loc.QuestionNumber(st.CurrentIndex, len(st.Bank))
	v.Question = q.Prompt(loc)
	v.PendingAnswer = st.PendingAnswer
	v.Evaluation = st.PendingEvaluation

	switch {
	case st.Discussing:
		v.Status = models.QuizStatusDiscussing
	case st.Evaluated():
		v.Status = models.QuizStatusEvaluated
	default:
		v.Status = models.QuizStatusAnswering
	}
	return v
}
