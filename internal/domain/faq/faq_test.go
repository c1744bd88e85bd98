package faq

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Menu(t *testing.T) {
	b := Default()
	menu := b.Menu()
	if !menu.Found || len(menu.Suggestions) != 7 {
		t.Fatalf("неожиданное меню: %+v", menu)
	}
	if !strings.HasPrefix(menu.Suggestions[0], "1. ") {
		t.Errorf("первый пункт %q", menu.Suggestions[0])
	}
}

func TestAnswer(t *testing.T) {
	b := Default()

	cases := []struct {
		query string
		found bool
		title string
	}{
		{"2", true, "Which mask protects against PM2.5?"},
		{" 7 ", true, "When should I see a doctor?"},
		{"Which MASK should I buy?", true, "Which mask protects against PM2.5?"},
		{"ใช้หน้ากากแบบไหนดี", true, "Which mask protects against PM2.5?"},
		{"99", false, ""},
		{"weather tomorrow", false, ""},
		{"", false, ""},
	}
	for _, tc := range cases {
		got := b.Answer(tc.query)
		if got.Found != tc.found {
			t.Errorf("Answer(%q).Found = %v", tc.query, got.Found)
			continue
		}
		if tc.found && got.Title != tc.title {
			t.Errorf("Answer(%q).Title = %q, ожидалось %q", tc.query, got.Title, tc.title)
		}
		if !tc.found && len(got.Suggestions) == 0 {
			t.Errorf("Answer(%q): нет подсказок при отсутствии ответа", tc.query)
		}
	}
}

func TestKnowledge(t *testing.T) {
	k := Default().Knowledge()
	if k.Title == "" || k.Body == "" {
		t.Errorf("пустая справка: %+v", k)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"нет записей":   "entries: []",
		"повтор номера": "entries:\n  - {number: 1, title: a}\n  - {number: 1, title: b}",
		"нулевой номер": "entries:\n  - {number: 0, title: a}",
		"битый yaml":    "entries: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Error("ожидалась ошибка")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	data := "entries:\n  - {number: 3, title: Three, keywords: [Dust], answer: three}\n  - {number: 1, title: One, answer: one}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("ошибка записи файла: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load вернул ошибку: %v", err)
	}
	if s := b.Menu().Suggestions; s[0] != "1. One" || s[1] != "3. Three" {
		t.Errorf("записи не упорядочены по номеру: %v", s)
	}
	if got := b.Answer("so much dust"); got.Title != "Three" {
		t.Errorf("ключевые слова не приведены к нижнему регистру: %+v", got)
	}
	if _, err := Load(""); err != nil {
		t.Errorf("встроенная база: %v", err)
	}
}
