package quiz

import (
	"context"
	"fmt"
	"strings"

	"lecture-companion/internal/llm"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/logger"
)

// BankGenerationError reports that the model could not be reached while
// building a bank. The quiz is left in the no-questions state.
type BankGenerationError struct {
	Err error
}

func (e *BankGenerationError) Error() string {
	return fmt.Sprintf("failed to generate questions: %v", e.Err)
}

func (e *BankGenerationError) Unwrap() error {
	return e.Err
}

type Service struct {
	gen   llm.Generator
	log   *logger.Logger
	count int
}

func NewService(gen llm.Generator, log *logger.Logger, count int) *Service {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, log: log, count: count}
}

func (s *Service) QuestionCount() int {
	return s.count
}

// GenerateBank asks the model for count questions and parses what comes back.
// A response with no well-formed chunks yields an empty bank and no error.
func (s *Service) GenerateBank(ctx context.Context, lectureText string, count int) ([]Question, error) {
	if count <= 0 {
		count = s.count
	}

	text, err := s.gen.Generate(llm.WithPurpose(ctx, llm.PurposeQuizBank), buildBankPrompt(lectureText, count))
	if err != nil {
		return nil, err
	}

	bank := ParseBank(text)
	if len(bank) < count {
		s.log.Warn("quiz bank shorter than requested", "requested", count, "parsed", len(bank))
	}
	return bank, nil
}

// Enter fills an empty bank. A state that already has questions is left as
// is. On generation failure the state stays empty and a *BankGenerationError
// is returned so callers can show a notice.
func (s *Service) Enter(ctx context.Context, st *State, lectureText string) error {
	if !st.Empty() {
		return nil
	}

	bank, err := s.GenerateBank(ctx, lectureText, s.count)
	if err != nil {
		s.log.Error("quiz bank generation failed", "error", err)
		st.Reset()
		return &BankGenerationError{Err: err}
	}

	st.Reset()
	st.Bank = bank
	return nil
}

// SubmitAnswer evaluates answer against the current question and records the
// result. The bank and index are never touched. On failure nothing changes.
func (s *Service) SubmitAnswer(ctx context.Context, st *State, loc locale.Locale, answer string) error {
	q, ok := st.Current()
	if !ok {
		return ErrNoQuestions
	}

	evaluation, err := s.Evaluate(ctx, q.Prompt(loc), q.Answer, answer, loc.Language)
	if err != nil {
		return err
	}

	st.PendingAnswer = answer
	st.PendingEvaluation = evaluation
	return nil
}

// Evaluate asks the model to judge userAnswer. There is no local correctness
// check; the model's text is the verdict.
func (s *Service) Evaluate(ctx context.Context, question, correctAnswer, userAnswer, language string) (string, error) {
	return s.gen.Generate(
		llm.WithPurpose(ctx, llm.PurposeEvaluation),
		buildEvaluationPrompt(question, correctAnswer, userAnswer, language),
	)
}

// AskDiscussion answers a follow-up about the current question. The reply is
// returned for display only and the state is not modified.
func (s *Service) AskDiscussion(ctx context.Context, st *State, loc locale.Locale, text string) (string, error) {
	if !st.Discussing {
		return "", ErrNotDiscussing
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyQuestion
	}
	q, ok := st.Current()
	if !ok {
		return "", ErrNoQuestions
	}

	return s.gen.Generate(
		llm.WithPurpose(ctx, llm.PurposeDiscussion),
		buildDiscussionPrompt(q, text, loc.Language),
	)
}
