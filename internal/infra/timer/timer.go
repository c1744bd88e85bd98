// Package timer периодически удаляет истекшие сессии.
package timer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger удаляет истекшие записи
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Updater запускает очистку по тикеру
type Updater struct {
	purger   Purger
	interval time.Duration
	log      *zap.Logger
}

func NewTimerUpdater(purger Purger, interval time.Duration, log *zap.Logger) *Updater {
	return &Updater{purger: purger, interval: interval, log: log}
}

// Run выполняет очистку каждые interval до отмены контекста.
// При нулевом интервале сразу возвращается: сессии все равно истекают при обращении.
func (u *Updater) Run(ctx context.Context) {
	if u.interval <= 0 {
		return
	}
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.log.Debug("Session purge stopped")
			return
		case <-ticker.C:
			removed, err := u.purger.PurgeExpired(ctx)
			if err != nil {
				u.log.Error("Failed to purge expired sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				u.log.Info("Expired sessions purged", zap.Int("removed", removed))
			}
		}
	}
}
