// Package catalog хранит неизменяемый упорядоченный набор вопросов анкеты.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IT-Nick/healthbot/internal/domain/model"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
)

// ConfigurationError ошибка некорректного каталога. Возникает только при загрузке.
type ConfigurationError struct {
	QuestionID string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid catalog: %s", e.Reason)
	}
	return fmt.Sprintf("invalid catalog: question %q: %s", e.QuestionID, e.Reason)
}

// Catalog упорядоченный набор вопросов: сначала симптомы, затем факторы риска.
// После создания не изменяется, поэтому чтение из нескольких горутин безопасно.
type Catalog struct {
	questions []model.Question
	index     map[string]int
	maxScore  int
}

// New проверяет вопросы и строит каталог
func New(questions []model.Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, &ConfigurationError{Reason: "no questions"}
	}

	ordered := make([]model.Question, 0, len(questions))
	for _, category := range []model.Category{model.CategorySymptom, model.CategoryRiskFactor} {
		for _, q := range questions {
			if q.Category == category {
				ordered = append(ordered, cloneQuestion(q))
			}
		}
	}

	c := &Catalog{index: make(map[string]int, len(questions))}
	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, &ConfigurationError{QuestionID: q.ID, Reason: "duplicate question id"}
		}
		c.index[q.ID] = -1
	}

	for i, q := range ordered {
		c.index[q.ID] = i
		best := 0
		for _, opt := range q.Options {
			best = max(best, opt.Points)
		}
		c.maxScore += best
	}
	c.questions = ordered

	return c, nil
}

func validateQuestion(q model.Question) error {
	if strings.TrimSpace(q.ID) == "" {
		return &ConfigurationError{Reason: "question without id"}
	}
	if !q.Category.Valid() {
		return &ConfigurationError{QuestionID: q.ID, Reason: fmt.Sprintf("unknown category %q", q.Category)}
	}
	if len(q.Options) == 0 {
		return &ConfigurationError{QuestionID: q.ID, Reason: "no options"}
	}

	seen := make(map[string]struct{}, len(q.Options)*2)
	for _, opt := range q.Options {
		sel := Normalize(opt.Selector)
		if sel == "" {
			return &ConfigurationError{QuestionID: q.ID, Reason: "option without selector"}
		}
		if opt.Points < 0 {
			return &ConfigurationError{QuestionID: q.ID, Reason: fmt.Sprintf("option %q has negative points", opt.Selector)}
		}
		keys := []string{sel}
		if v := Normalize(opt.Value); v != "" && v != sel {
			keys = append(keys, v)
		}
		for _, key := range keys {
			if _, dup := seen[key]; dup {
				return &ConfigurationError{QuestionID: q.ID, Reason: fmt.Sprintf("duplicate selector %q", key)}
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

// QuestionAt возвращает вопрос по индексу в общем порядке
func (c *Catalog) QuestionAt(index int) (model.Question, error) {
	if index < 0 || index >= len(c.questions) {
		return model.Question{}, fmt.Errorf("%w: index %d", ErrQuestionNotFound, index)
	}
	return cloneQuestion(c.questions[index]), nil
}

// TotalQuestions количество вопросов в каталоге
func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// MaxScore максимально возможный балл анкеты
func (c *Catalog) MaxScore() int {
	return c.maxScore
}

// IndexOf позиция вопроса в общем порядке
func (c *Catalog) IndexOf(questionID string) (int, bool) {
	i, ok := c.index[questionID]
	return i, ok
}

// FindOption ищет вариант ответа по селектору или коду варианта.
// Сравнение идет после нормализации, поэтому "Severe " совпадет с "severe".
func (c *Catalog) FindOption(questionID, selector string) (model.Option, error) {
	i, ok := c.index[questionID]
	if !ok {
		return model.Option{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	sel := Normalize(selector)
	if sel == "" {
		return model.Option{}, fmt.Errorf("%w: empty selector for %s", ErrOptionNotFound, questionID)
	}
	for _, opt := range c.questions[i].Options {
		if Normalize(opt.Selector) == sel || Normalize(opt.Value) == sel {
			return opt, nil
		}
	}
	return model.Option{}, fmt.Errorf("%w: %q for %s", ErrOptionNotFound, selector, questionID)
}

// Questions копия всех вопросов в порядке каталога
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, 0, len(c.questions))
	for _, q := range c.questions {
		out = append(out, cloneQuestion(q))
	}
	return out
}

// Normalize приводит ввод пользователя к каноническому виду: без пробелов по краям и в нижнем регистре
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneQuestion(q model.Question) model.Question {
	cp := q
	cp.Options = make([]model.Option, len(q.Options))
	copy(cp.Options, q.Options)
	return cp
}
