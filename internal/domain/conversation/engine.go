// Package conversation ведет пользователя по анкете: меню, вопросы, итог и FAQ.
package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/healthbot/internal/domain/catalog"
	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/scoring"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrCorruptSession сохраненная сессия нарушает инварианты анкеты
var ErrCorruptSession = errors.New("corrupt session")

// SessionStore хранилище сессий
type SessionStore interface {
	Get(ctx context.Context, userID string) (model.Session, bool, error)
	CreateOrReset(ctx context.Context, userID string) (model.Session, error)
	Save(ctx context.Context, session *model.Session) error
}

// FAQ источник справочных ответов. Его ответы передаются транспорту без изменений.
type FAQ interface {
	Menu() model.FAQReply
	Knowledge() model.FAQReply
	Answer(query string) model.FAQReply
}

// Engine автомат диалога. Сообщения одного пользователя обрабатываются строго по очереди,
// разные пользователи обрабатываются параллельно.
type Engine struct {
	catalog  *catalog.Catalog
	scorer   *scoring.Scorer
	sessions SessionStore
	faq      FAQ
	log      *zap.Logger
	locks    *keyedMutex
}

// NewEngine создает новый экземпляр Engine
func NewEngine(c *catalog.Catalog, scorer *scoring.Scorer, sessions SessionStore, faq FAQ, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		catalog:  c,
		scorer:   scorer,
		sessions: sessions,
		faq:      faq,
		log:      log,
		locks:    newKeyedMutex(),
	}
}

// HandleMessage обрабатывает одно входящее сообщение и возвращает ровно один ответ.
// Изменения сессии сохраняются только при успешной обработке.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (model.Response, error) {
	unlock := e.locks.Lock(userID)
	defer unlock()

	session, ok, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		if session, err = e.sessions.CreateOrReset(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}

	work := session.Clone()
	log := e.log.With(zap.String("user_id", userID))
	resp, err := e.dispatch(ctx, &work, text, log)
	if err != nil {
		log.Error("Failed to handle message",
			zap.String("stage", string(session.Stage)),
			zap.Int("cursor", session.Cursor),
			zap.Int("answers", len(session.Answers)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := e.sessions.Save(ctx, &work); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return resp, nil
}

func (e *Engine) dispatch(ctx context.Context, work *model.Session, text string, log *zap.Logger) (model.Response, error) {
	input := catalog.Normalize(text)
	machine := newStageMachine(work, log)

	switch classify(input) {
	case triggerGreeting:
		return e.restart(ctx, machine, noticeWelcome)
	case triggerRestart:
		return e.restart(ctx, machine, "")
	case triggerCancel:
		return e.restart(ctx, machine, noticeCancelled)
	}

	switch work.Stage {
	case model.StageMainMenu:
		if sel, ok := menuSelection(input); ok {
			return e.selectMenu(ctx, machine, sel)
		}
		return model.InvalidSelectionResponse{Note: noteInvalidMenu, Reshown: e.menu("")}, nil

	case model.StageInAssessment:
		return e.answer(ctx, machine, input)

	case model.StageFAQBrowsing:
		return model.FAQResponse{Query: text, Reply: e.faq.Answer(text)}, nil

	case model.StageIdle, model.StageCompleted:
	default:
		log.Warn("Unknown stage, starting over", zap.String("stage", string(work.Stage)))
		work.Reset()
		machine = newStageMachine(work, log)
	}

	if sel, ok := menuSelection(input); ok {
		return e.selectMenu(ctx, machine, sel)
	}
	if err := machine.fire(ctx, eventOpenMenu); err != nil {
		return nil, err
	}
	return e.menu(noticeWelcome), nil
}

func (e *Engine) restart(ctx context.Context, m *stageMachine, notice string) (model.Response, error) {
	m.session.Cursor = 0
	m.session.Answers = nil
	if err := m.fire(ctx, eventRestart); err != nil {
		return nil, err
	}
	return e.menu(notice), nil
}

func (e *Engine) selectMenu(ctx context.Context, m *stageMachine, selector string) (model.Response, error) {
	switch selector {
	case model.MenuAssessment:
		if err := m.fire(ctx, eventStartAssessment); err != nil {
			return nil, err
		}
		m.session.Cursor = 0
		m.session.Answers = nil
		return e.question(0)

	case model.MenuKnowledge:
		if err := m.fire(ctx, eventOpenFAQ); err != nil {
			return nil, err
		}
		return model.FAQResponse{Reply: e.faq.Knowledge()}, nil

	case model.MenuFAQ:
		if err := m.fire(ctx, eventOpenFAQ); err != nil {
			return nil, err
		}
		return model.FAQResponse{Reply: e.faq.Menu()}, nil
	}
	return nil, fmt.Errorf("unhandled menu selector %q", selector)
}

func (e *Engine) answer(ctx context.Context, m *stageMachine, input string) (model.Response, error) {
	s := m.session
	total := e.catalog.TotalQuestions()
	if s.Cursor < 0 || s.Cursor >= total || len(s.Answers) != s.Cursor {
		return nil, fmt.Errorf("%w: cursor %d, %d answers, %d questions", ErrCorruptSession, s.Cursor, len(s.Answers), total)
	}

	q, err := e.catalog.QuestionAt(s.Cursor)
	if err != nil {
		return nil, err
	}
	opt, err := e.catalog.FindOption(q.ID, input)
	if errors.Is(err, catalog.ErrOptionNotFound) {
		reshown, err := e.question(s.Cursor)
		if err != nil {
			return nil, err
		}
		return model.InvalidSelectionResponse{Note: noteInvalidAns, Reshown: reshown}, nil
	}
	if err != nil {
		return nil, err
	}

	s.Answers = append(s.Answers, model.Answer{QuestionID: q.ID, Selector: opt.Selector, Points: opt.Points})
	s.Cursor++
	if s.Cursor < total {
		return e.question(s.Cursor)
	}

	if err := m.fire(ctx, eventComplete); err != nil {
		return nil, err
	}
	result, err := e.scorer.Score(s.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to score assessment: %w", err)
	}
	if err := m.fire(ctx, eventDeliver); err != nil {
		return nil, err
	}
	s.Reset()
	return model.ResultResponse{Result: result}, nil
}

func (e *Engine) question(index int) (model.Response, error) {
	q, err := e.catalog.QuestionAt(index)
	if err != nil {
		return nil, err
	}
	return model.QuestionResponse{
		QuestionID: q.ID,
		Category:   q.Category,
		Prompt:     q.Prompt,
		Choices:    q.Choices(),
		Progress:   model.Progress{Current: index + 1, Total: e.catalog.TotalQuestions()},
	}, nil
}

func (e *Engine) menu(notice string) model.MenuResponse {
	return model.MenuResponse{
		Items: lo.Map(menuItems, func(item menuItem, _ int) model.Choice {
			return model.Choice{Selector: item.selector, Alias: item.alias, Label: item.label}
		}),
		Notice: notice,
	}
}
