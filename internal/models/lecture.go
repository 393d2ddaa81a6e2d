package models

import "lecture-companion/internal/locale"

type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}

type LessonsResponse struct {
	Subject string   `json:"subject"`
	Lessons []string `json:"lessons"`
}

type LocalesResponse struct {
	Locales []locale.Locale `json:"locales"`
}

// LectureView describes the selected lecture without shipping its full text.
type LectureView struct {
	Subject string `json:"subject"`
	Lesson  string `json:"lesson"`
	Missing bool   `json:"missing"`
	// Notice is the placeholder shown when the transcript could not be loaded.
	Notice    string `json:"notice,omitempty"`
	TextChars int    `json:"text_chars"`
}
