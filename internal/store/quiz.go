package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuizRecord is a persisted generation result. Payload holds the full
// quiz JSON (questions and flashcards) as produced by the generator.
type QuizRecord struct {
	ID            string
	CreatedAt     time.Time
	SourceName    string
	Language      string
	QuestionCount int
	Payload       []byte
}

// QuizRepo persists generated quizzes for later replay.
type QuizRepo interface {
	SaveQuiz(ctx context.Context, rec *QuizRecord) error
	GetQuiz(ctx context.Context, id string) (*QuizRecord, error)
	ListQuizzes(ctx context.Context, limit int) ([]QuizRecord, error)
}

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) SaveQuiz(ctx context.Context, rec *QuizRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, created_at, source_name, language, question_count, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt, rec.SourceName, rec.Language, rec.QuestionCount, string(rec.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) GetQuiz(ctx context.Context, id string) (*QuizRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, source_name, language, question_count, payload
		FROM quizzes WHERE id = ?`, id)

	rec, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *quizRepo) ListQuizzes(ctx context.Context, limit int) ([]QuizRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, source_name, language, question_count, payload
		FROM quizzes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizRecord
	for rows.Next() {
		rec, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanQuiz(row rowScanner) (*QuizRecord, error) {
	var (
		rec     QuizRecord
		payload string
	)
	err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.SourceName, &rec.Language, &rec.QuestionCount, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	rec.Payload = []byte(payload)
	return &rec, nil
}
