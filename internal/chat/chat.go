package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/llm"
	"lecture-companion/internal/locale"
)

var ErrEmptyMessage = errors.New("message is empty")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the chat transcript. It is append-only and only ever grows in
// user/assistant pairs.
type Session struct {
	Turns []Turn `json:"turns"`
}

func (s *Session) append(role Role, content string, at time.Time) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content, CreatedAt: at})
}

type Service struct {
	gen llm.Generator
	now func() time.Time
}

func NewService(gen llm.Generator) *Service {
	return &Service{gen: gen, now: time.Now}
}

// Ask answers message against the lecture. On success the user turn and the
// reply are appended to sess; on failure sess is unchanged and the error is
// returned as is.
func (s *Service) Ask(ctx context.Context, sess *Session, lc lecture.Context, message string, loc locale.Locale) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.gen.Generate(llm.WithPurpose(ctx, llm.PurposeChat), buildPrompt(lc, message, loc.Language))
	if err != nil {
		return "", err
	}

	at := s.now()
	sess.append(RoleUser, message, at)
	sess.append(RoleAssistant, reply, at)
	return reply, nil
}

// buildPrompt frames a single exchange. Earlier turns are not replayed; each
// question is answered from the lecture alone.
func buildPrompt(lc lecture.Context, message, language string) string {
	framing := fmt.Sprintf(
		"The current lecture is about %s, %s. Here's the content of the lecture:\n\n%s\n\nPlease summarize and explain aspects of this lecture based on the student's questions. Respond in %s.",
		lc.Subject, lc.Lesson, lc.Text, language,
	)
	return fmt.Sprintf("%s\n\nHuman: %s\n\nAI:", framing, message)
}
