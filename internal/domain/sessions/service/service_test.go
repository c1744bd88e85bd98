package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/sessions/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newService(t *testing.T) (*SessionService, *fakeClock, *repository.MemoryRepository) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryRepository()
	return NewSessionService(repo, 30*time.Minute, WithClock(clock.Now)), clock, repo
}

func TestCreateOrReset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	s := model.NewSession("1", time.Time{})
	s.Stage = model.StageInAssessment
	s.Cursor = 3
	s.Answers = make([]model.Answer, 3)
	if err := svc.Save(ctx, &s); err != nil {
		t.Fatalf("Save вернул ошибку: %v", err)
	}

	fresh, err := svc.CreateOrReset(ctx, "1")
	if err != nil {
		t.Fatalf("CreateOrReset вернул ошибку: %v", err)
	}
	if fresh.Stage != model.StageIdle || fresh.Cursor != 0 || len(fresh.Answers) != 0 {
		t.Errorf("сессия не сброшена: %+v", fresh)
	}

	got, ok, err := svc.Get(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Stage != model.StageIdle {
		t.Errorf("в хранилище этап %s, ожидался idle", got.Stage)
	}
}

func TestSave_StampsActivity(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newService(t)

	s, _ := svc.CreateOrReset(ctx, "1")
	clock.Advance(10 * time.Minute)
	if err := svc.Save(ctx, &s); err != nil {
		t.Fatalf("Save вернул ошибку: %v", err)
	}
	if !s.LastActivityAt.Equal(clock.Now()) {
		t.Errorf("LastActivityAt %v, ожидалось %v", s.LastActivityAt, clock.Now())
	}
	if s.CreatedAt.Equal(s.LastActivityAt) {
		t.Error("CreatedAt не должен меняться при сохранении")
	}
}

// TestGet_Expiry сессия старше окна считается отсутствующей и удаляется.
func TestGet_Expiry(t *testing.T) {
	ctx := context.Background()
	svc, clock, repo := newService(t)

	s, _ := svc.CreateOrReset(ctx, "1")
	s.Stage = model.StageInAssessment
	_ = svc.Save(ctx, &s)

	clock.Advance(30 * time.Minute)
	if _, ok, _ := svc.Get(ctx, "1"); !ok {
		t.Fatal("ровно на границе окна сессия еще действительна")
	}

	clock.Advance(time.Second)
	if _, ok, err := svc.Get(ctx, "1"); err != nil || ok {
		t.Fatalf("истекшая сессия: ok=%v err=%v", ok, err)
	}
	if repo.Len() != 0 {
		t.Error("истекшая сессия не удалена из хранилища")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, _ = svc.CreateOrReset(ctx, "1")
	if err := svc.Clear(ctx, "1"); err != nil {
		t.Fatalf("Clear вернул ошибку: %v", err)
	}
	if _, ok, _ := svc.Get(ctx, "1"); ok {
		t.Error("сессия осталась после Clear")
	}
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	svc, clock, repo := newService(t)

	_, _ = svc.CreateOrReset(ctx, "old")
	clock.Advance(20 * time.Minute)
	_, _ = svc.CreateOrReset(ctx, "fresh")
	clock.Advance(15 * time.Minute)

	removed, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired вернул ошибку: %v", err)
	}
	if removed != 1 || repo.Len() != 1 {
		t.Errorf("удалено %d, осталось %d", removed, repo.Len())
	}
}

func TestNewSessionService_DefaultTTL(t *testing.T) {
	svc := NewSessionService(repository.NewMemoryRepository(), 0)
	if svc.TTL() != DefaultTTL {
		t.Errorf("TTL %v, ожидалось %v", svc.TTL(), DefaultTTL)
	}
}
