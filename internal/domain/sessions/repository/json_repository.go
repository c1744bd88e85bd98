package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
)

// JSONRepository - реализация, сохраняющая сессии в JSON-файл.
// Весь цикл чтение-изменение-запись выполняется под одной блокировкой.
type JSONRepository struct {
	filename string
	mu       sync.Mutex
}

// NewJSONRepository создаёт новый JSONRepository с указанным файлом
func NewJSONRepository(filename string) (*JSONRepository, error) {
	const op = "repository.NewJSONRepository"

	if filename == "" {
		return nil, fmt.Errorf("%s: empty file name", op)
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: failed to create directory %s: %w", op, dir, err)
		}
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(filename, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("%s: failed to create file %s: %w", op, filename, err)
		}
	}
	return &JSONRepository{filename: filename}, nil
}

func (j *JSONRepository) load() (map[string]model.Session, error) {
	data, err := os.ReadFile(j.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", j.filename, err)
	}
	if len(data) == 0 {
		return make(map[string]model.Session), nil
	}
	var m map[string]model.Session
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}
	if m == nil {
		m = make(map[string]model.Session)
	}
	return m, nil
}

func (j *JSONRepository) save(m map[string]model.Session) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	tmp := j.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, j.filename); err != nil {
		return fmt.Errorf("failed to replace file %s: %w", j.filename, err)
	}
	return nil
}

func (j *JSONRepository) Get(_ context.Context, userID string) (model.Session, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return model.Session{}, false, err
	}
	s, ok := m[userID]
	return s, ok, nil
}

func (j *JSONRepository) Set(_ context.Context, session model.Session) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	m[session.UserID] = session
	return j.save(m)
}

func (j *JSONRepository) Delete(_ context.Context, userID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	if _, ok := m[userID]; !ok {
		return nil
	}
	delete(m, userID)
	return j.save(m)
}

func (j *JSONRepository) DeleteInactiveSince(_ context.Context, cutoff time.Time) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return 0, err
	}
	removed := 0
	for id, s := range m {
		if s.LastActivityAt.Before(cutoff) {
			delete(m, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, j.save(m)
}
