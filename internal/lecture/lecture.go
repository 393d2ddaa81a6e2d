package lecture

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by a Store when a (subject, lesson) pair has no transcript.
	ErrNotFound    = errors.New("lecture not found")
	ErrInvalidName = errors.New("invalid subject or lesson name")
)

// Store enumerates lectures and loads their transcript text.
type Store interface {
	ListSubjects(ctx context.Context) ([]string, error)
	ListLessons(ctx context.Context, subject string) ([]string, error)
	LoadText(ctx context.Context, subject, lesson string) (string, error)
}

// Writer stores imported transcripts.
type Writer interface {
	Save(ctx context.Context, subject, lesson, text string) error
}

// Context is the lecture a session is grounded in. It is immutable for the
// life of a session and replaced wholesale when the selection changes.
type Context struct {
	Subject string `json:"subject"`
	Lesson  string `json:"lesson"`
	Text    string `json:"text"`
	// Missing is set when Text is a placeholder rather than a transcript.
	Missing bool `json:"missing"`
}

// Open loads the transcript for (subject, lesson). Failures never abort the
// session: the returned Context carries a visible placeholder instead.
func Open(ctx context.Context, store Store, subject, lesson string) Context {
	text, err := store.LoadText(ctx, subject, lesson)
	switch {
	case errors.Is(err, ErrNotFound):
		return Context{Subject: subject, Lesson: lesson, Text: NotFoundText(subject, lesson), Missing: true}
	case err != nil:
		return Context{Subject: subject, Lesson: lesson, Text: fmt.Sprintf("Error loading lecture content: %v", err), Missing: true}
	}
	return Context{Subject: subject, Lesson: lesson, Text: text}
}

func NotFoundText(subject, lesson string) string {
	return fmt.Sprintf("Error: Lecture file for %s, %s not found.", subject, lesson)
}

// ValidName rejects names that could escape a lectures root or collide with
// path syntax.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}
