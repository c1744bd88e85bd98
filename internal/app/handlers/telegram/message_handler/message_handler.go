package message_handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/healthbot/internal/app/render"
	"github.com/IT-Nick/healthbot/internal/domain/model"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// handleTimeout ограничение на обработку одного сообщения
const handleTimeout = 10 * time.Second

// Engine движок диалога
type Engine interface {
	HandleMessage(ctx context.Context, userID, text string) (model.Response, error)
}

// ResultRecorder архив результатов
type ResultRecorder interface {
	Record(ctx context.Context, userID string, result model.AssessmentResult) (model.AssessmentRecord, error)
}

// MessageHandler структура для обработки текстовых сообщений
type MessageHandler struct {
	engine  Engine
	results ResultRecorder
	log     *zap.Logger
}

// NewMessageHandler возвращает структуру обработчика
func NewMessageHandler(engine Engine, results ResultRecorder, log *zap.Logger) *MessageHandler {
	return &MessageHandler{engine: engine, results: results, log: log}
}

// Handle передает текст движку диалога и отправляет ответ пользователю.
// Результат анкеты сохраняется в архив уже после ответа.
func (h *MessageHandler) Handle(c telebot.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := strconv.FormatInt(sender.ID, 10)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	resp, err := h.engine.HandleMessage(ctx, userID, stripBotMention(c.Text()))
	if err != nil {
		h.log.Error("Failed to handle message", zap.String("user_id", userID), zap.Error(err))
		return c.Send(render.ErrorText)
	}

	text, markup := render.Render(resp)
	sendErr := c.Send(text, &telebot.SendOptions{ReplyMarkup: markup})

	if res, ok := resp.(model.ResultResponse); ok && h.results != nil {
		rec, err := h.results.Record(ctx, userID, res.Result)
		if err != nil {
			h.log.Error("Failed to archive assessment", zap.String("user_id", userID), zap.Error(err))
		} else {
			h.log.Info("Assessment archived",
				zap.String("user_id", userID),
				zap.String("record_id", rec.ID.String()),
				zap.String("risk_tier", string(res.Result.RiskTier)),
			)
		}
	}
	return sendErr
}

// stripBotMention убирает @имя_бота у команды: в группах приходит "/start@HealthBot"
func stripBotMention(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return text
	}
	command, rest, hasRest := strings.Cut(trimmed, " ")
	name, _, found := strings.Cut(command, "@")
	if !found {
		return text
	}
	if hasRest {
		return name + " " + rest
	}
	return name
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *MessageHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
