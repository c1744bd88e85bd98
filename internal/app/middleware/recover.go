package middleware

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// Recover перехватывает панику обработчика и превращает ее в ошибку
func Recover(log *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("unknown panic: %v", x)
					}
					log.Error("Recovered from panic", zap.Error(err), zap.Stack("stack"))
				}
			}()
			return next(c)
		}
	}
}
