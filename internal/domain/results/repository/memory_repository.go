package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/google/uuid"
)

// MemoryRepository - in‑memory реализация архива
type MemoryRepository struct {
	records map[uuid.UUID]model.AssessmentRecord
	byUser  map[string][]uuid.UUID
	mu      sync.RWMutex
}

// NewMemoryRepository создаёт новый MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]model.AssessmentRecord),
		byUser:  make(map[string][]uuid.UUID),
	}
}

func (m *MemoryRepository) Insert(_ context.Context, record model.AssessmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[record.ID]; exists {
		return fmt.Errorf("assessment record %s already exists", record.ID)
	}
	m.records[record.ID] = record
	m.byUser[record.UserID] = append(m.byUser[record.UserID], record.ID)
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (model.AssessmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return model.AssessmentRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return r, nil
}

// ListByUser возвращает записи пользователя, новые первыми
func (m *MemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]model.AssessmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byUser[userID]
	out := make([]model.AssessmentRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.records[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
