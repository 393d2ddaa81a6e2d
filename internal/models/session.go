package models

import (
	"time"

	"lecture-companion/internal/locale"
)

type SessionResponse struct {
	ID        string        `json:"id"`
	Mode      string        `json:"mode"`
	Locale    locale.Locale `json:"locale"`
	Lecture   *LectureView  `json:"lecture,omitempty"`
	ChatTurns int           `json:"chat_turns"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SelectLectureRequest struct {
	Subject string `json:"subject"`
	Lesson  string `json:"lesson"`
}

type SetLocaleRequest struct {
	Locale string `json:"locale"`
}

type SetModeRequest struct {
	Mode string `json:"mode"`
}
