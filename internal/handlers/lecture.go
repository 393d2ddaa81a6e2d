package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
)

type LectureHandler struct {
	store lecture.Store
	log   *logger.Logger
}

func NewLectureHandler(store lecture.Store, log *logger.Logger) *LectureHandler {
	return &LectureHandler{store: store, log: log}
}

func (h *LectureHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects(r.Context())
	if err != nil {
		h.log.Error("failed to list subjects", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list subjects", r))
		return
	}
	if subjects == nil {
		subjects = []string{}
	}
	writeJSON(w, http.StatusOK, models.SubjectsResponse{Subjects: subjects})
}

func (h *LectureHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	subject := chi.URLParam(r, "subject")

	lessons, err := h.store.ListLessons(r.Context(), subject)
	if errors.Is(err, lecture.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Subject not found", r))
		return
	}
	if err != nil {
		h.log.Error("failed to list lessons", "subject", subject, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list lessons", r))
		return
	}
	if lessons == nil {
		lessons = []string{}
	}
	writeJSON(w, http.StatusOK, models.LessonsResponse{Subject: subject, Lessons: lessons})
}

func (h *LectureHandler) ListLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.LocalesResponse{Locales: locale.All()})
}
