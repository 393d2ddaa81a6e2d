package handlers

import (
	"net/http"
	"strings"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
	"lecture-companion/internal/session"
)

type SessionHandler struct {
	sessions sessionManager
	store    lecture.Store
	log      *logger.Logger
}

func NewSessionHandler(sessions sessionManager, store lecture.Store, log *logger.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store, log: log}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Error("failed to clear session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to clear session", r))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectLecture loads the chosen lesson. A missing transcript is not an
// error: the session carries a placeholder and the response flags it.
func (h *SessionHandler) SelectLecture(w http.ResponseWriter, r *http.Request) {
	var req models.SelectLectureRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Subject) == "" {
		fields["subject"] = "Subject is required"
	}
	if strings.TrimSpace(req.Lesson) == "" {
		fields["lesson"] = "Lesson is required"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}

	lc := lecture.Open(r.Context(), h.store, req.Subject, req.Lesson)
	if lc.Missing {
		h.log.Warn("lecture unavailable", "subject", req.Subject, "lesson", req.Lesson)
	}
	s.SelectLecture(lc)

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *SessionHandler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var req models.SetLocaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loc, ok := locale.Lookup(locale.Tag(req.Locale))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{"locale": "Unsupported locale"}, r))
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	s.Locale = loc.Tag

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req models.SetModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode := session.Mode(strings.ToLower(req.Mode))
	if !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{"mode": "Mode must be chat or quiz"}, r))
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	s.Mode = mode

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}
