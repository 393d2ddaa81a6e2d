package handlers

import (
	"errors"
	"net/http"

	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
	"lecture-companion/internal/quiz"
	"lecture-companion/internal/session"
)

type QuizHandler struct {
	sessions sessionManager
	quiz     *quiz.Service
	log      *logger.Logger
}

func NewQuizHandler(sessions sessionManager, quizService *quiz.Service, log *logger.Logger) *QuizHandler {
	return &QuizHandler{sessions: sessions, quiz: quizService, log: log}
}

// Get returns the quiz as it stands without generating anything.
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, quizView(&s.Quiz, s.Localization()))
}

// Start enters quiz mode, generating a bank if there is none.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.enter(w, r, false)
}

// Regenerate discards the bank and builds a new one.
func (h *QuizHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	h.enter(w, r, true)
}

func (h *QuizHandler) enter(w http.ResponseWriter, r *http.Request, reset bool) {
	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	loc := s.Localization()

	if s.Lecture == nil {
		handleServiceError(w, r, errNoLecture, loc, h.log)
		return
	}

	s.Mode = session.ModeQuiz
	if reset {
		s.Quiz.Reset()
	}

	// A failed generation still leaves a valid, empty quiz to show.
	notice := ""
	var bankErr *quiz.BankGenerationError
	if err := h.quiz.Enter(r.Context(), &s.Quiz, s.Lecture.Text); errors.As(err, &bankErr) {
		notice = loc.Strings.ErrorGenerating
	} else if err != nil {
		handleServiceError(w, r, err, loc, h.log)
		return
	}

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}

	view := quizView(&s.Quiz, loc)
	if notice != "" {
		view.Notice = notice
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	loc := s.Localization()

	if err := h.quiz.SubmitAnswer(r.Context(), &s.Quiz, loc, req.Answer); err != nil {
		handleServiceError(w, r, err, loc, h.log)
		return
	}

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, quizView(&s.Quiz, loc))
}

func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*quiz.State).Next)
}

func (h *QuizHandler) Discuss(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*quiz.State).Discuss)
}

func (h *QuizHandler) transition(w http.ResponseWriter, r *http.Request, step func(*quiz.State) error) {
	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	loc := s.Localization()

	if err := step(&s.Quiz); err != nil {
		handleServiceError(w, r, err, loc, h.log)
		return
	}

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, quizView(&s.Quiz, loc))
}

// Discussion answers a follow-up question. The reply is not stored, so
// there is nothing to save.
func (h *QuizHandler) Discussion(w http.ResponseWriter, r *http.Request) {
	var req models.DiscussionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	loc := s.Localization()

	reply, err := h.quiz.AskDiscussion(r.Context(), &s.Quiz, loc, req.Question)
	if err != nil {
		handleServiceError(w, r, err, loc, h.log)
		return
	}

	writeJSON(w, http.StatusOK, models.DiscussionResponse{Reply: reply, Quiz: quizView(&s.Quiz, loc)})
}
