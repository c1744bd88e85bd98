// Package repository хранит сессии диалога без учета политики истечения.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Типы хранилища сессий
const (
	StorageMemory   = "memory"
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

// Repository определяет интерфейс для работы с сессиями.
// Реализации безопасны для конкурентного доступа; операции атомарны по ключу.
type Repository interface {
	Get(ctx context.Context, userID string) (model.Session, bool, error)
	Set(ctx context.Context, session model.Session) error
	Delete(ctx context.Context, userID string) error
	DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int, error)
}

// NewRepository возвращает реализацию Repository в зависимости от типа хранения.
// Для postgres нужен пул, для json - путь к файлу.
func NewRepository(storageType, filename string, db *pgxpool.Pool) (Repository, error) {
	switch storageType {
	case StorageMemory, "":
		return NewMemoryRepository(), nil
	case StorageJSON:
		return NewJSONRepository(filename)
	case StoragePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres session storage requires a database pool")
		}
		return NewPostgresRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown session storage type %q", storageType)
	}
}
