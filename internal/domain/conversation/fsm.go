package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// События смены этапа
const (
	eventRestart         = "restart"
	eventOpenMenu        = "open_menu"
	eventStartAssessment = "start_assessment"
	eventOpenFAQ         = "open_faq"
	eventComplete        = "complete"
	eventDeliver         = "deliver"
)

func stages(s ...model.Stage) []string {
	out := make([]string, len(s))
	for i, st := range s {
		out[i] = string(st)
	}
	return out
}

// transitions таблица переходов. Ответы на вопросы, запросы к FAQ и ошибки ввода этап не меняют.
var transitions = fsm.Events{
	{Name: eventRestart, Src: stages(model.StageIdle, model.StageMainMenu, model.StageInAssessment, model.StageCompleted, model.StageFAQBrowsing), Dst: string(model.StageMainMenu)},
	{Name: eventOpenMenu, Src: stages(model.StageIdle, model.StageCompleted), Dst: string(model.StageMainMenu)},
	{Name: eventStartAssessment, Src: stages(model.StageIdle, model.StageCompleted, model.StageMainMenu), Dst: string(model.StageInAssessment)},
	{Name: eventOpenFAQ, Src: stages(model.StageIdle, model.StageCompleted, model.StageMainMenu), Dst: string(model.StageFAQBrowsing)},
	{Name: eventComplete, Src: stages(model.StageInAssessment), Dst: string(model.StageCompleted)},
	{Name: eventDeliver, Src: stages(model.StageCompleted), Dst: string(model.StageIdle)},
}

// stageMachine автомат этапов одной сессии на время обработки сообщения
type stageMachine struct {
	fsm     *fsm.FSM
	session *model.Session
}

func newStageMachine(session *model.Session, log *zap.Logger) *stageMachine {
	f := fsm.NewFSM(string(session.Stage), transitions, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			log.Debug("Stage changed",
				zap.String("event", e.Event),
				zap.String("from", e.Src),
				zap.String("to", e.Dst),
			)
		},
	})
	return &stageMachine{fsm: f, session: session}
}

// fire выполняет переход и записывает новый этап в сессию.
// Переход в тот же этап не считается ошибкой.
func (m *stageMachine) fire(ctx context.Context, event string) error {
	if err := m.fsm.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return fmt.Errorf("transition %s from %s: %w", event, m.fsm.Current(), err)
		}
	}
	m.session.Stage = model.Stage(m.fsm.Current())
	return nil
}
