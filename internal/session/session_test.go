package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/quiz"
)

func TestNew(t *testing.T) {
	s := New()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, locale.Default, s.Locale)
	assert.Equal(t, ModeChat, s.Mode)
	assert.Nil(t, s.Lecture)
	assert.True(t, s.Quiz.Empty())
	assert.NotEqual(t, s.ID, New().ID)
}

func TestSession_SelectLecture(t *testing.T) {
	s := New()
	s.Chat.Turns = []chat.Turn{{Role: chat.RoleUser, Content: "hi"}, {Role: chat.RoleAssistant, Content: "hello"}}

	assert.True(t, s.SelectLecture(lecture.Context{Subject: "physics", Lesson: "optics", Text: "light"}))
	s.Quiz = quiz.State{Bank: []quiz.Question{{PromptPrimary: "Q", PromptSecondary: "س", Answer: "A"}}, PendingEvaluation: "ok"}

	// Same lesson again keeps the quiz.
	assert.False(t, s.SelectLecture(lecture.Context{Subject: "physics", Lesson: "optics", Text: "light"}))
	assert.Len(t, s.Quiz.Bank, 1)

	assert.True(t, s.SelectLecture(lecture.Context{Subject: "physics", Lesson: "heat", Text: "warm"}))
	assert.Equal(t, quiz.State{}, s.Quiz)
	assert.Equal(t, "heat", s.Lecture.Lesson)
	assert.Len(t, s.Chat.Turns, 2)
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeChat.Valid())
	assert.True(t, ModeQuiz.Valid())
	assert.False(t, Mode("flashcards").Valid())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := New()
	s.Mode = ModeQuiz
	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeQuiz, loaded.Mode)

	// Loaded sessions are copies.
	loaded.Mode = ModeChat
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeQuiz, again.Mode)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old := New()
	require.NoError(t, store.Save(ctx, old))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stale := New()
	require.NoError(t, store.Save(ctx, stale))
	now = now.Add(2 * time.Minute)
	fresh := New()
	require.NoError(t, store.Save(ctx, fresh))
	assert.Equal(t, 1, store.Len())
}

func TestManager_LoadIssuesCookieAndReuses(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	m := NewManager(store, "test-secret-test-secret-32bytes!", time.Hour, false)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	first, err := m.Load(rr, req)
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	first.Locale = locale.Arabic
	require.NoError(t, m.Save(context.Background(), first))

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req2.AddCookie(cookies[0])
	second, err := m.Load(httptest.NewRecorder(), req2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, locale.Arabic, second.Locale)
}

func TestManager_TamperedCookieStartsFresh(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	m := NewManager(store, "test-secret-test-secret-32bytes!", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-signed-value"})
	s, err := m.Load(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, store.Len())
}

func TestManager_Clear(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	m := NewManager(store, "test-secret-test-secret-32bytes!", time.Hour, false)

	rr := httptest.NewRecorder()
	s, err := m.Load(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.AddCookie(rr.Result().Cookies()[0])
	rr2 := httptest.NewRecorder()
	require.NoError(t, m.Clear(rr2, req))

	_, err = store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.Len(t, rr2.Result().Cookies(), 1)
	assert.True(t, rr2.Result().Cookies()[0].MaxAge < 0)
}

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client, time.Minute)

	s := New()
	s.SelectLecture(lecture.Context{Subject: "physics", Lesson: "optics", Text: "light"})
	require.NoError(t, store.Save(ctx, s))
	defer store.Delete(ctx, s.ID)

	loaded, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Lecture)
	assert.Equal(t, "optics", loaded.Lecture.Lesson)

	ttl, err := client.TTL(ctx, redisKeyPrefix+s.ID).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
