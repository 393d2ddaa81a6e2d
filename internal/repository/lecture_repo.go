package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lecture-companion/internal/lecture"
)

// LectureRepo serves lecture transcripts from the lectures table. It is the
// database-backed alternative to lecture.FileStore.
type LectureRepo struct {
	pool *pgxpool.Pool
}

func NewLectureRepo(pool *pgxpool.Pool) *LectureRepo {
	return &LectureRepo{pool: pool}
}

func (r *LectureRepo) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT subject FROM lectures ORDER BY subject`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *LectureRepo) ListLessons(ctx context.Context, subject string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT lesson FROM lectures WHERE subject = $1 ORDER BY lesson`, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	lessons, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, lecture.ErrNotFound
	}
	return lessons, nil
}

func (r *LectureRepo) LoadText(ctx context.Context, subject, lesson string) (string, error) {
	var text string
	err := r.pool.QueryRow(ctx,
		`SELECT content FROM lectures WHERE subject = $1 AND lesson = $2`,
		subject, lesson,
	).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", lecture.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load lecture: %w", err)
	}
	return text, nil
}

// Save inserts or replaces a transcript.
func (r *LectureRepo) Save(ctx context.Context, subject, lesson, text string) error {
	if !lecture.ValidName(subject) || !lecture.ValidName(lesson) {
		return lecture.ErrInvalidName
	}

	query := `INSERT INTO lectures (subject, lesson, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject, lesson) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()`

	if _, err := r.pool.Exec(ctx, query, subject, lesson, text); err != nil {
		return fmt.Errorf("failed to save lecture: %w", err)
	}
	return nil
}
