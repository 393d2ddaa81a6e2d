// Package app wires configuration to concrete backends. Both the HTTP server
// and the CLI build their dependencies through it.
package app

import (
	"context"
	"fmt"

	"lecture-companion/internal/config"
	"lecture-companion/internal/database"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/repository"
	"lecture-companion/internal/session"
)

// Lectures is a lecture store that can also accept imports.
type Lectures interface {
	lecture.Store
	lecture.Writer
}

// OpenLectures returns the configured content backend and a func releasing it.
func OpenLectures(ctx context.Context, cfg *config.Config, log *logger.Logger) (Lectures, func(), error) {
	switch cfg.ContentBackend {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewLectureRepo(pool), pool.Close, nil
	case "files":
		return lecture.NewFileStore(cfg.LecturesDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown content backend: %q", cfg.ContentBackend)
	}
}

// OpenSessions returns the configured session store and a func releasing it.
func OpenSessions(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	case "memory":
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %q", cfg.SessionBackend)
	}
}
