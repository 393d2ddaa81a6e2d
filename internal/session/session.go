package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/quiz"
)

var ErrNotFound = errors.New("session not found")

type Mode string

const (
	ModeChat Mode = "chat"
	ModeQuiz Mode = "quiz"
)

func (m Mode) Valid() bool {
	return m == ModeChat || m == ModeQuiz
}

// Session is everything one user's interaction carries between requests.
// Operations receive it explicitly; there is no process-wide state.
type Session struct {
	ID        string           `json:"id"`
	Lecture   *lecture.Context `json:"lecture,omitempty"`
	Locale    locale.Tag       `json:"locale"`
	Mode      Mode             `json:"mode"`
	Chat      chat.Session     `json:"chat"`
	Quiz      quiz.State       `json:"quiz"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		Locale:    locale.Default,
		Mode:      ModeChat,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectLecture replaces the lecture context. Switching to a different
// lesson discards the quiz, which belongs to the old lecture; the chat
// transcript is kept. Reports whether the lecture changed.
func (s *Session) SelectLecture(lc lecture.Context) bool {
	if s.Lecture != nil && s.Lecture.Subject == lc.Subject && s.Lecture.Lesson == lc.Lesson {
		return false
	}
	s.Lecture = &lc
	s.Quiz.Reset()
	return true
}

func (s *Session) Localization() locale.Locale {
	return locale.Resolve(s.Locale)
}

func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
