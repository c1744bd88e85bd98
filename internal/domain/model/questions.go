package model

// Category группа вопроса анкеты
type Category string

const (
	CategorySymptom    Category = "symptom"
	CategoryRiskFactor Category = "risk_factor"
)

// Valid сообщает, известна ли категория
func (c Category) Valid() bool {
	return c == CategorySymptom || c == CategoryRiskFactor
}

// Option вариант ответа на вопрос.
// Selector - токен, который пользователь отправляет для выбора варианта,
// Value - стабильный код варианта (например, "severe").
type Option struct {
	Selector string `json:"selector" yaml:"selector"`
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	Points   int    `json:"points" yaml:"points"`
}

// Question представляет вопрос анкеты
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Prompt   string   `json:"prompt" yaml:"prompt"`
	Options  []Option `json:"options" yaml:"options"`
}

// Choices возвращает пары (selector, label) в порядке вариантов
func (q Question) Choices() []Choice {
	choices := make([]Choice, 0, len(q.Options))
	for _, opt := range q.Options {
		choices = append(choices, Choice{Selector: opt.Selector, Label: opt.Label})
	}
	return choices
}

// Choice пара для отрисовки варианта на стороне транспорта.
// Alias короткий ввод, принимаемый вместо Selector (номер пункта меню).
type Choice struct {
	Selector string `json:"selector"`
	Alias    string `json:"alias,omitempty"`
	Label    string `json:"label"`
}

// Input то, что пользователь вводит для выбора варианта
func (c Choice) Input() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Selector
}
