// Package service ведет архив результатов анкет.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/results/repository"
	"github.com/google/uuid"
)

// DefaultHistoryLimit сколько последних результатов отдается по умолчанию
const DefaultHistoryLimit = 20

// ResultService содержит логику архива результатов
type ResultService struct {
	repo repository.Repository
	now  func() time.Time
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(repo repository.Repository) *ResultService {
	return &ResultService{repo: repo, now: time.Now}
}

// Record сохраняет результат пользователя и возвращает запись с новым идентификатором
func (s *ResultService) Record(ctx context.Context, userID string, result model.AssessmentResult) (model.AssessmentRecord, error) {
	rec := model.AssessmentRecord{
		ID:          uuid.New(),
		UserID:      userID,
		Result:      result,
		CompletedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return model.AssessmentRecord{}, fmt.Errorf("failed to record assessment: %w", err)
	}
	return rec, nil
}

// Get возвращает запись по идентификатору
func (s *ResultService) Get(ctx context.Context, id uuid.UUID) (model.AssessmentRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser возвращает последние результаты пользователя
func (s *ResultService) ListByUser(ctx context.Context, userID string, limit int) ([]model.AssessmentRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return records, nil
}
