// Package middleware содержит промежуточные обработчики бота.
package middleware

import (
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// Logger пишет в лог каждое обновление и время его обработки
func Logger(log *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Int("update_id", c.Update().ID),
				zap.Duration("latency", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if msg := c.Message(); msg != nil {
				fields = append(fields, zap.String("text", msg.Text))
			} else if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", cb.Data))
			}

			if err != nil {
				log.Error("Update failed", append(fields, zap.Error(err))...)
			} else {
				log.Debug("Update processed", fields...)
			}
			return err
		}
	}
}
