package app

import (
	"context"
	"testing"
	"time"

	"lecture-companion/internal/config"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/session"
)

func TestOpenLectures_Files(t *testing.T) {
	cfg := &config.Config{ContentBackend: "files", LecturesDir: t.TempDir()}

	store, closeFn, err := OpenLectures(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := store.(*lecture.FileStore); !ok {
		t.Errorf("Expected *lecture.FileStore, got %T", store)
	}
}

func TestOpenLectures_Unknown(t *testing.T) {
	cfg := &config.Config{ContentBackend: "s3"}
	if _, _, err := OpenLectures(context.Background(), cfg, logger.Nop()); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestOpenSessions_Memory(t *testing.T) {
	cfg := &config.Config{SessionBackend: "memory", SessionTTL: time.Hour}

	store, closeFn, err := OpenSessions(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := store.(*session.MemoryStore); !ok {
		t.Errorf("Expected *session.MemoryStore, got %T", store)
	}
}

func TestOpenSessions_BadRedisURL(t *testing.T) {
	cfg := &config.Config{SessionBackend: "redis", RedisURL: "::not-a-url"}
	if _, _, err := OpenSessions(context.Background(), cfg); err == nil {
		t.Error("Expected error for malformed Redis URL")
	}
}
