package models

import "lecture-companion/internal/quiz"

// Quiz statuses reported to the presentation layer.
const (
	QuizStatusNoQuestions = "no_questions"
	QuizStatusAnswering   = "awaiting_answer"
	QuizStatusEvaluated   = "evaluated"
	QuizStatusDiscussing  = "discussing"
)

// QuizView is what the quiz screen renders. Question is already resolved to
// the session's locale.
type QuizView struct {
	Status        string        `json:"status"`
	Total         int           `json:"total"`
	Index         int           `json:"index"`
	Label         string        `json:"label,omitempty"`
	Question      string        `json:"question,omitempty"`
	PendingAnswer string        `json:"pending_answer,omitempty"`
	Evaluation    string        `json:"evaluation,omitempty"`
	Discussing    bool          `json:"discussing"`
	Actions       []quiz.Action `json:"actions"`
	Notice        string        `json:"notice,omitempty"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type DiscussionRequest struct {
	Question string `json:"question"`
}

type DiscussionResponse struct {
	Reply string   `json:"reply"`
	Quiz  QuizView `json:"quiz"`
}
