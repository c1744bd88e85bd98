// Package service реализует хранилище сессий диалога с окном неактивности.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/sessions/repository"
)

// DefaultTTL окно неактивности по умолчанию
const DefaultTTL = 30 * time.Minute

// SessionService содержит логику работы с сессиями: создание, сохранение и истечение.
// Истекшая сессия удаляется при первом обращении и считается отсутствующей.
type SessionService struct {
	repo repository.Repository
	ttl  time.Duration
	now  func() time.Time
}

// Option настройка SessionService
type Option func(*SessionService)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *SessionService) {
		s.now = now
	}
}

// NewSessionService создает новый экземпляр SessionService.
// ttl <= 0 означает DefaultTTL.
func NewSessionService(repo repository.Repository, ttl time.Duration, opts ...Option) *SessionService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &SessionService{repo: repo, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL окно неактивности
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Get возвращает сессию пользователя, если она существует и не истекла
func (s *SessionService) Get(ctx context.Context, userID string) (model.Session, bool, error) {
	session, ok, err := s.repo.Get(ctx, userID)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("failed to get session: %w", err)
	}
	if !ok {
		return model.Session{}, false, nil
	}
	if session.ExpiredAt(s.now(), s.ttl) {
		if err := s.repo.Delete(ctx, userID); err != nil {
			return model.Session{}, false, fmt.Errorf("failed to drop expired session: %w", err)
		}
		return model.Session{}, false, nil
	}
	return session, true, nil
}

// CreateOrReset создает чистую сессию на этапе idle, затирая прежнюю
func (s *SessionService) CreateOrReset(ctx context.Context, userID string) (model.Session, error) {
	session := model.NewSession(userID, s.now())
	if err := s.repo.Set(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Save отмечает активность и сохраняет сессию
func (s *SessionService) Save(ctx context.Context, session *model.Session) error {
	session.LastActivityAt = s.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.LastActivityAt
	}
	if err := s.repo.Set(ctx, *session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear удаляет сессию пользователя
func (s *SessionService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// PurgeExpired удаляет все истекшие сессии и возвращает их количество
func (s *SessionService) PurgeExpired(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteInactiveSince(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return removed, nil
}
