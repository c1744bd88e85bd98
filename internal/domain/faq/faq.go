// Package faq отвечает на вопросы о PM2.5 по номеру или ключевому слову.
package faq

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var embedded []byte

// Entry запись базы вопросов
type Entry struct {
	Number   int      `yaml:"number"`
	Title    string   `yaml:"title"`
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

type article struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type file struct {
	Knowledge article `yaml:"knowledge"`
	Entries   []Entry `yaml:"entries"`
}

// Base база ответов. После загрузки не изменяется.
type Base struct {
	knowledge article
	entries   []Entry
	byNumber  map[int]Entry
}

// Parse читает базу из YAML
func Parse(data []byte) (*Base, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse faq: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("faq has no entries")
	}

	b := &Base{knowledge: f.Knowledge, byNumber: make(map[int]Entry, len(f.Entries))}
	for _, e := range f.Entries {
		if e.Number <= 0 {
			return nil, fmt.Errorf("faq entry %q: number must be positive", e.Title)
		}
		if _, dup := b.byNumber[e.Number]; dup {
			return nil, fmt.Errorf("faq entry %d: duplicate number", e.Number)
		}
		e.Keywords = lo.Map(e.Keywords, func(k string, _ int) string { return strings.ToLower(strings.TrimSpace(k)) })
		e.Answer = strings.TrimSpace(e.Answer)
		b.byNumber[e.Number] = e
		b.entries = append(b.entries, e)
	}
	sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].Number < b.entries[j].Number })
	return b, nil
}

// Load читает базу из файла; пустой путь означает встроенную базу
func Load(path string) (*Base, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read faq file %s: %w", path, err)
	}
	return Parse(data)
}

// Default встроенная база
func Default() *Base {
	b, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return b
}

// Menu список вопросов с номерами
func (b *Base) Menu() model.FAQReply {
	return model.FAQReply{
		Found:       true,
		Title:       "Frequently asked questions",
		Body:        "Send the number of a question or ask about PM2.5 in your own words.",
		Suggestions: b.suggestions(),
	}
}

// Knowledge общая справка о PM2.5
func (b *Base) Knowledge() model.FAQReply {
	return model.FAQReply{
		Found:       true,
		Title:       b.knowledge.Title,
		Body:        strings.TrimSpace(b.knowledge.Body),
		Suggestions: b.suggestions(),
	}
}

// Answer ищет ответ сначала по номеру, затем по вхождению ключевого слова
func (b *Base) Answer(query string) model.FAQReply {
	q := strings.ToLower(strings.TrimSpace(query))
	if n, err := strconv.Atoi(q); err == nil {
		if e, ok := b.byNumber[n]; ok {
			return model.FAQReply{Found: true, Title: e.Title, Body: e.Answer}
		}
	}
	if q != "" {
		for _, e := range b.entries {
			if lo.SomeBy(e.Keywords, func(k string) bool { return k != "" && strings.Contains(q, k) }) {
				return model.FAQReply{Found: true, Title: e.Title, Body: e.Answer}
			}
		}
	}
	return model.FAQReply{
		Found:       false,
		Body:        "Sorry, I could not find an answer. Pick one of the questions below.",
		Suggestions: b.suggestions(),
	}
}

func (b *Base) suggestions() []string {
	return lo.Map(b.entries, func(e Entry, _ int) string { return fmt.Sprintf("%d. %s", e.Number, e.Title) })
}
