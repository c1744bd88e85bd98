package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository архив результатов в PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository создает новый экземпляр PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert сохраняет результат анкеты
func (r *PostgresRepository) Insert(ctx context.Context, rec model.AssessmentRecord) error {
	details, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode assessment result: %w", err)
	}
	_, err = r.db.Exec(ctx, `
                INSERT INTO assessment_results (id, user_id, total_score, max_score, risk_tier, details, completed_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, rec.ID.String(), rec.UserID, rec.Result.TotalScore, rec.Result.MaxScore, string(rec.Result.RiskTier), details, rec.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert assessment result: %w", err)
	}
	return nil
}

// GetByID возвращает результат по идентификатору
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (model.AssessmentRecord, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id::text, user_id, details, completed_at
        FROM assessment_results
        WHERE id = $1
    `, id.String())
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AssessmentRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		return model.AssessmentRecord{}, fmt.Errorf("failed to get assessment result: %w", err)
	}
	return rec, nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.AssessmentRecord, error) {
	query := `
        SELECT id::text, user_id, details, completed_at
        FROM assessment_results
        WHERE user_id = $1
        ORDER BY completed_at DESC
    `
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment results: %w", err)
	}
	defer rows.Close()

	var records []model.AssessmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment result: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment results: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (model.AssessmentRecord, error) {
	var (
		rec     model.AssessmentRecord
		id      string
		details []byte
	)
	if err := row.Scan(&id, &rec.UserID, &details, &rec.CompletedAt); err != nil {
		return model.AssessmentRecord{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.AssessmentRecord{}, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	rec.ID = parsed
	if err := json.Unmarshal(details, &rec.Result); err != nil {
		return model.AssessmentRecord{}, fmt.Errorf("failed to decode assessment result: %w", err)
	}
	return rec, nil
}
