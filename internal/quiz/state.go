package quiz

import (
	"errors"

	"lecture-companion/internal/locale"
)

var (
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrNotEvaluated  = errors.New("current question has not been evaluated")
	ErrNotDiscussing = errors.New("discussion is not open")
	ErrEmptyQuestion = errors.New("discussion question is empty")
)

// Question is one bank entry. PromptPrimary is the English prompt,
// PromptSecondary the Arabic one.
type Question struct {
	PromptPrimary   string `json:"prompt_primary"`
	PromptSecondary string `json:"prompt_secondary"`
	Answer          string `json:"answer"`
}

// Prompt returns the prompt shown to a user of the given locale.
func (q Question) Prompt(loc locale.Locale) string {
	if loc.UsesPrimaryPrompt() {
		return q.PromptPrimary
	}
	return q.PromptSecondary
}

// State is a session's quiz. The zero value is the empty shape: no bank,
// index 0, nothing pending.
type State struct {
	Bank              []Question `json:"bank"`
	CurrentIndex      int        `json:"current_index"`
	PendingAnswer     string     `json:"pending_answer"`
	PendingEvaluation string     `json:"pending_evaluation"`
	Discussing        bool       `json:"discussing"`
}

type Action string

const (
	ActionAnswer     Action = "answer"
	ActionNext       Action = "next"
	ActionDiscuss    Action = "discuss"
	ActionDiscussion Action = "discussion"
	ActionRegenerate Action = "regenerate"
)

func (s *State) Empty() bool {
	return len(s.Bank) == 0
}

// Current returns the question at CurrentIndex.
func (s *State) Current() (Question, bool) {
	if s.Empty() {
		return Question{}, false
	}
	return s.Bank[s.CurrentIndex%len(s.Bank)], true
}

func (s *State) Evaluated() bool {
	return s.PendingEvaluation != ""
}

// Next advances cyclically and clears everything pending. The bank never runs
// out: after the last question the index returns to 0.
func (s *State) Next() error {
	if s.Empty() {
		return ErrNoQuestions
	}
	if !s.Evaluated() {
		return ErrNotEvaluated
	}
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Bank)
	s.clearPending()
	return nil
}

func (s *State) Discuss() error {
	if s.Empty() {
		return ErrNoQuestions
	}
	if !s.Evaluated() {
		return ErrNotEvaluated
	}
	s.Discussing = true
	return nil
}

func (s *State) Reset() {
	*s = State{}
}

// Actions lists what the user may do next.
func (s *State) Actions() []Action {
	if s.Empty() {
		return []Action{ActionRegenerate}
	}
	actions := []Action{ActionAnswer}
	if s.Evaluated() {
		actions = append(actions, ActionNext, ActionDiscuss)
	}
	if s.Discussing {
		actions = append(actions, ActionDiscussion)
	}
	return append(actions, ActionRegenerate)
}

func (s *State) clearPending() {
	s.PendingAnswer = ""
	s.PendingEvaluation = ""
	s.Discussing = false
}
