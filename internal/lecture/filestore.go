package lecture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// lessonExts lists the lesson file formats in lookup priority order.
var lessonExts = []string{".txt", ".pdf"}

// FileStore serves lectures laid out as <root>/<subject>/<lesson>.txt
// (or .pdf). Subjects are directories; lessons are files.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) ListSubjects(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read lectures directory: %w", err)
	}

	var subjects []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			subjects = append(subjects, e.Name())
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (s *FileStore) ListLessons(ctx context.Context, subject string) ([]string, error) {
	if !ValidName(subject) {
		return nil, ErrNotFound
	}

	entries, err := os.ReadDir(filepath.Join(s.root, subject))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read subject directory: %w", err)
	}

	seen := make(map[string]bool)
	var lessons []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !isLessonExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			lessons = append(lessons, name)
		}
	}
	sort.Strings(lessons)
	return lessons, nil
}

func (s *FileStore) LoadText(ctx context.Context, subject, lesson string) (string, error) {
	if !ValidName(subject) || !ValidName(lesson) {
		return "", ErrNotFound
	}

	for _, ext := range lessonExts {
		path := filepath.Join(s.root, subject, lesson+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		var text string
		var err error
		switch ext {
		case ".pdf":
			text, err = extractPDF(path)
		default:
			text, err = extractTXT(path)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read lesson %s/%s: %w", subject, lesson, err)
		}
		return text, nil
	}

	return "", ErrNotFound
}

// Save writes text as <root>/<subject>/<lesson>.txt, creating the subject
// directory when needed.
func (s *FileStore) Save(ctx context.Context, subject, lesson, text string) error {
	if !ValidName(subject) || !ValidName(lesson) {
		return ErrInvalidName
	}

	dir := filepath.Join(s.root, subject)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create subject directory: %w", err)
	}

	path := filepath.Join(dir, lesson+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write lesson: %w", err)
	}
	return nil
}

func isLessonExt(ext string) bool {
	for _, e := range lessonExts {
		if e == ext {
			return true
		}
	}
	return false
}
