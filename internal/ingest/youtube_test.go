package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/logger"
)

type fakeTranscripts struct {
	text string
	err  error
	ids  []string
}

func (f *fakeTranscripts) Transcript(_ context.Context, videoID string) (string, error) {
	f.ids = append(f.ids, videoID)
	return f.text, f.err
}

type fakeTitles struct {
	title string
	err   error
}

func (f *fakeTitles) Title(_ context.Context, _ string) (string, error) {
	return f.title, f.err
}

func newTestImporter(t *testing.T, tr *fakeTranscripts, ti *fakeTitles) (*YouTubeImporter, *lecture.FileStore) {
	t.Helper()
	store := lecture.NewFileStore(t.TempDir())
	return &YouTubeImporter{transcripts: tr, titles: ti, writer: store, log: logger.Nop()}, store
}

func TestImport_WithLesson(t *testing.T) {
	tr := &fakeTranscripts{text: "welcome to the lecture on optics"}
	imp, store := newTestImporter(t, tr, &fakeTitles{err: errors.New("should not be called")})

	res, err := imp.Import(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "physics", "optics")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", res.VideoID)
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, tr.ids)

	text, err := store.LoadText(context.Background(), "physics", "optics")
	require.NoError(t, err)
	assert.Equal(t, "welcome to the lecture on optics", text)
}

func TestImport_LessonFromTitle(t *testing.T) {
	tr := &fakeTranscripts{text: "transcript"}
	imp, store := newTestImporter(t, tr, &fakeTitles{title: "Lecture 3: Heat / Work  "})

	res, err := imp.Import(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "physics", "")
	require.NoError(t, err)
	assert.Equal(t, "Lecture 3: Heat - Work", res.Lesson)

	lessons, err := store.ListLessons(context.Background(), "physics")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lecture 3: Heat - Work"}, lessons)
}

func TestImport_Errors(t *testing.T) {
	imp, _ := newTestImporter(t, &fakeTranscripts{err: errors.New("no captions")}, &fakeTitles{})

	_, err := imp.Import(context.Background(), "abc", "physics", "x")
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = imp.Import(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "../etc", "x")
	assert.ErrorIs(t, err, lecture.ErrInvalidName)

	_, err = imp.Import(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "physics", "x")
	assert.EqualError(t, err, "no captions")
}

func TestLessonName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Intro to Thermodynamics", "Intro to Thermodynamics"},
		{"  spaced   out  ", "spaced out"},
		{"a/b\\c", "a-b-c"},
		{"..", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LessonName(tc.in), "LessonName(%q)", tc.in)
	}
}
