// Package repository хранит архив результатов анкет.
package repository

import (
	"context"
	"errors"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("assessment record not found")

// Repository определяет интерфейс архива результатов
type Repository interface {
	Insert(ctx context.Context, record model.AssessmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (model.AssessmentRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.AssessmentRecord, error)
}
