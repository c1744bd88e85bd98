// Package poller выбирает способ получения обновлений Telegram.
package poller

import (
	"fmt"

	"github.com/IT-Nick/healthbot/internal/infra/config"
	"gopkg.in/telebot.v4"
)

// NewPoller создаёт Poller в зависимости от режима
func NewPoller(cfg *config.Config) (telebot.Poller, error) {
	switch cfg.TelegramBot.Mode {
	case config.ModeWebhook:
		if cfg.TelegramBot.WebhookURL == "" {
			return nil, fmt.Errorf("webhook mode requires WEBHOOK_URL")
		}
		return &telebot.Webhook{
			Listen: cfg.TelegramBot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}, nil
	case config.ModePolling, "":
		return &telebot.LongPoller{Timeout: cfg.TelegramBot.PollInterval.Std()}, nil
	default:
		return nil, fmt.Errorf("unknown bot mode %q", cfg.TelegramBot.Mode)
	}
}
