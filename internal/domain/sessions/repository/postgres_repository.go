package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository реализация с использованием базы данных PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository создает новый экземпляр PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get получает сессию по идентификатору пользователя
func (r *PostgresRepository) Get(ctx context.Context, userID string) (model.Session, bool, error) {
	query := `
        SELECT user_id, stage, question_cursor, answers, created_at, last_activity_at
        FROM sessions
        WHERE user_id = $1
    `
	var (
		s       model.Session
		stage   string
		answers []byte
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &stage, &s.Cursor, &answers, &s.CreatedAt, &s.LastActivityAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, fmt.Errorf("failed to get session: %w", err)
	}
	s.Stage = model.Stage(stage)
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return model.Session{}, false, fmt.Errorf("failed to decode session answers: %w", err)
		}
	}
	return s, true, nil
}

// Set создает или обновляет сессию пользователя
func (r *PostgresRepository) Set(ctx context.Context, s model.Session) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode session answers: %w", err)
	}
	_, err = r.db.Exec(ctx, `
                INSERT INTO sessions (user_id, stage, question_cursor, answers, created_at, last_activity_at)
                VALUES ($1, $2, $3, $4, $5, $6)
                ON CONFLICT (user_id) DO UPDATE
                SET stage = EXCLUDED.stage,
                        question_cursor = EXCLUDED.question_cursor,
                        answers = EXCLUDED.answers,
                        created_at = EXCLUDED.created_at,
                        last_activity_at = EXCLUDED.last_activity_at
        `, s.UserID, string(s.Stage), s.Cursor, answers, s.CreatedAt, s.LastActivityAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete удаляет сессию пользователя
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE user_id=$1", userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteInactiveSince удаляет сессии без активности с момента cutoff
func (r *PostgresRepository) DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE last_activity_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive sessions: %w", err)
	}
	return int(result.RowsAffected()), nil
}
