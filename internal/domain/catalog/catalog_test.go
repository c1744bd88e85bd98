package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/IT-Nick/healthbot/internal/domain/model"
)

func severity() []model.Option {
	return []model.Option{
		{Selector: "1", Value: "none", Label: "None", Points: 0},
		{Selector: "2", Value: "mild", Label: "Mild", Points: 1},
		{Selector: "3", Value: "severe", Label: "Severe", Points: 2},
	}
}

// TestDefault_Layout проверяет встроенный каталог: 6 симптомов, затем 3 фактора риска.
func TestDefault_Layout(t *testing.T) {
	c := Default()

	if c.TotalQuestions() != 9 {
		t.Fatalf("ожидалось 9 вопросов, получено %d", c.TotalQuestions())
	}
	for i := 0; i < c.TotalQuestions(); i++ {
		q, err := c.QuestionAt(i)
		if err != nil {
			t.Fatalf("QuestionAt(%d) вернул ошибку: %v", i, err)
		}
		want := model.CategorySymptom
		if i >= 6 {
			want = model.CategoryRiskFactor
		}
		if q.Category != want {
			t.Errorf("вопрос %d (%s): категория %s, ожидалась %s", i, q.ID, q.Category, want)
		}
	}
	if c.MaxScore() != 18 {
		t.Errorf("максимальный балл %d, ожидался 18", c.MaxScore())
	}
}

// TestNew_OrdersSymptomsFirst проверяет, что факторы риска уходят в конец при сохранении относительного порядка.
func TestNew_OrdersSymptomsFirst(t *testing.T) {
	c, err := New([]model.Question{
		{ID: "age", Category: model.CategoryRiskFactor, Options: severity()},
		{ID: "cough", Category: model.CategorySymptom, Options: severity()},
		{ID: "outdoor", Category: model.CategoryRiskFactor, Options: severity()},
		{ID: "eyes", Category: model.CategorySymptom, Options: severity()},
	})
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}

	want := []string{"cough", "eyes", "age", "outdoor"}
	for i, id := range want {
		q, _ := c.QuestionAt(i)
		if q.ID != id {
			t.Errorf("позиция %d: получено %s, ожидалось %s", i, q.ID, id)
		}
		if idx, ok := c.IndexOf(id); !ok || idx != i {
			t.Errorf("IndexOf(%s) = %d, %v", id, idx, ok)
		}
	}
}

// TestNew_ConfigurationErrors проверяет отказ при некорректном каталоге.
func TestNew_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name      string
		questions []model.Question
	}{
		{"пустой каталог", nil},
		{"вопрос без вариантов", []model.Question{{ID: "cough", Category: model.CategorySymptom}}},
		{"повтор id", []model.Question{
			{ID: "cough", Category: model.CategorySymptom, Options: severity()},
			{ID: "cough", Category: model.CategorySymptom, Options: severity()},
		}},
		{"повтор селектора", []model.Question{{ID: "cough", Category: model.CategorySymptom, Options: []model.Option{
			{Selector: "1", Points: 0}, {Selector: " 1 ", Points: 1},
		}}}},
		{"отрицательные баллы", []model.Question{{ID: "cough", Category: model.CategorySymptom, Options: []model.Option{
			{Selector: "1", Points: -1},
		}}}},
		{"неизвестная категория", []model.Question{{ID: "cough", Category: "mood", Options: severity()}}},
		{"пустой селектор", []model.Question{{ID: "cough", Category: model.CategorySymptom, Options: []model.Option{
			{Selector: "  ", Points: 0},
		}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.questions)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ожидалась ConfigurationError, получено %v", err)
			}
		})
	}
}

// TestNew_SingleOptionQuestion вопрос с одним вариантом допустим.
func TestNew_SingleOptionQuestion(t *testing.T) {
	c, err := New([]model.Question{{ID: "consent", Category: model.CategorySymptom, Options: []model.Option{
		{Selector: "ok", Label: "OK"},
	}}})
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}
	if c.TotalQuestions() != 1 {
		t.Fatalf("ожидался 1 вопрос, получено %d", c.TotalQuestions())
	}
}

// TestFindOption проверяет поиск по селектору, по коду и нормализацию ввода.
func TestFindOption(t *testing.T) {
	c := Default()

	cases := []struct {
		selector string
		want     int
		wantErr  error
	}{
		{"3", 2, nil},
		{" 3 ", 2, nil},
		{"SEVERE", 2, nil},
		{"none", 0, nil},
		{"4", 0, ErrOptionNotFound},
		{"", 0, ErrOptionNotFound},
	}
	for _, tc := range cases {
		opt, err := c.FindOption("cough", tc.selector)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("FindOption(%q): ожидалась %v, получено %v", tc.selector, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FindOption(%q) вернул ошибку: %v", tc.selector, err)
			continue
		}
		if opt.Points != tc.want {
			t.Errorf("FindOption(%q).Points = %d, ожидалось %d", tc.selector, opt.Points, tc.want)
		}
	}

	if _, err := c.FindOption("unknown", "1"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("ожидалась ErrQuestionNotFound, получено %v", err)
	}
}

// TestQuestionAt_OutOfRange проверяет границы индекса и то, что копия не меняет каталог.
func TestQuestionAt_OutOfRange(t *testing.T) {
	c := Default()
	if _, err := c.QuestionAt(-1); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("QuestionAt(-1): %v", err)
	}
	if _, err := c.QuestionAt(c.TotalQuestions()); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("QuestionAt(total): %v", err)
	}

	q, _ := c.QuestionAt(0)
	q.Options[0].Points = 100
	again, _ := c.QuestionAt(0)
	if again.Options[0].Points == 100 {
		t.Error("изменение копии вопроса затронуло каталог")
	}
}

// TestLoadFile проверяет загрузку каталога из YAML-файла.
func TestLoadFile(t *testing.T) {
	data := []byte(`
questions:
  - id: outdoor
    category: risk_factor
    prompt: Outdoors?
    options:
      - { selector: "1", value: "no", label: "No", points: 0 }
      - { selector: "2", value: "yes", label: "Yes", points: 1 }
  - id: cough
    category: symptom
    prompt: Cough?
    options:
      - { selector: "1", label: "None", points: 0 }
`)
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("ошибка записи файла: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile вернул ошибку: %v", err)
	}
	first, _ := c.QuestionAt(0)
	if first.ID != "cough" || c.TotalQuestions() != 2 {
		t.Errorf("неожиданный каталог: первый %s, всего %d", first.ID, c.TotalQuestions())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ожидалась ошибка для отсутствующего файла")
	}

	var cfgErr *ConfigurationError
	if _, err := Parse([]byte("questions: []")); !errors.As(err, &cfgErr) {
		t.Errorf("пустой список вопросов: ожидалась ConfigurationError, получено %v", err)
	}
}
