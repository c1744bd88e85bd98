package repository

import (
	"context"
	"sync"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
)

// MemoryRepository - in‑memory реализация
type MemoryRepository struct {
	data map[string]model.Session
	mu   sync.RWMutex
}

// NewMemoryRepository создаёт новый MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]model.Session)}
}

func (m *MemoryRepository) Get(_ context.Context, userID string) (model.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[userID]
	return s.Clone(), ok, nil
}

func (m *MemoryRepository) Set(_ context.Context, session model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[session.UserID] = session.Clone()
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

func (m *MemoryRepository) DeleteInactiveSince(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.data {
		if s.LastActivityAt.Before(cutoff) {
			delete(m.data, id)
			removed++
		}
	}
	return removed, nil
}

// Len количество сохраненных сессий, включая истекшие
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
