// Package render превращает ответы движка диалога в сообщения Telegram.
package render

import (
	"fmt"
	"strings"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/samber/lo"
	"gopkg.in/telebot.v4"
)

const (
	// Disclaimer добавляется к каждому результату
	Disclaimer = "⚠️ This is initial advice only and cannot replace a diagnosis by a doctor."
	// ErrorText отправляется пользователю при внутренней ошибке
	ErrorText = "Sorry, something went wrong. Please try again or send \"menu\" to start over."

	menuButton = "menu"
)

var tierLabels = map[model.RiskTier]string{
	model.RiskLow:    "🟢 Low",
	model.RiskMedium: "🟡 Medium",
	model.RiskHigh:   "🔴 High",
}

// Render возвращает текст сообщения и клавиатуру для ответа
func Render(resp model.Response) (string, *telebot.ReplyMarkup) {
	switch r := resp.(type) {
	case model.MenuResponse:
		return menuText(r), keyboard(r.Items, false)
	case model.QuestionResponse:
		return questionText(r), keyboard(r.Choices, true)
	case model.InvalidSelectionResponse:
		text, markup := Render(r.Reshown)
		return "❗ " + r.Note + "\n\n" + text, markup
	case model.ResultResponse:
		return resultText(r.Result), keyboard(nil, true)
	case model.FAQResponse:
		return faqText(r.Reply), faqKeyboard(r.Reply)
	default:
		return ErrorText, nil
	}
}

func menuText(r model.MenuResponse) string {
	var b strings.Builder
	if r.Notice != "" {
		b.WriteString(r.Notice)
		b.WriteString("\n\n")
	}
	b.WriteString("Choose an option:\n")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%s. %s\n", item.Input(), item.Label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func questionText(r model.QuestionResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n%s\n\n", r.Progress.Current, r.Progress.Total, r.Prompt)
	for _, c := range r.Choices {
		fmt.Fprintf(&b, "%s. %s\n", c.Input(), c.Label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func resultText(res model.AssessmentResult) string {
	var b strings.Builder
	b.WriteString("📋 Assessment result\n\n")
	fmt.Fprintf(&b, "Score: %d/%d (symptoms %d, risk factors %d)\n", res.TotalScore, res.MaxScore, res.SymptomScore, res.RiskFactorScore)
	fmt.Fprintf(&b, "Risk level: %s\n\n", TierLabel(res.RiskTier))
	b.WriteString("Recommendations:\n")
	for _, rec := range res.Recommendations {
		fmt.Fprintf(&b, "• %s\n", rec)
	}
	b.WriteString("\n")
	b.WriteString(Disclaimer)
	return b.String()
}

func faqText(reply model.FAQReply) string {
	var b strings.Builder
	if reply.Title != "" {
		b.WriteString(reply.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(reply.Body)
	if len(reply.Suggestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(reply.Suggestions, "\n"))
	}
	return b.String()
}

// TierLabel подпись уровня риска
func TierLabel(tier model.RiskTier) string {
	if label, ok := tierLabels[tier]; ok {
		return label
	}
	return string(tier)
}

// keyboard клавиатура из вводимых значений, по три кнопки в ряд
func keyboard(choices []model.Choice, withMenu bool) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	buttons := lo.Map(choices, func(c model.Choice, _ int) telebot.Btn { return markup.Text(c.Input()) })
	if withMenu {
		buttons = append(buttons, markup.Text(menuButton))
	}
	rows := lo.Map(lo.Chunk(buttons, 3), func(chunk []telebot.Btn, _ int) telebot.Row { return markup.Row(chunk...) })
	markup.Reply(rows...)
	return markup
}

// faqKeyboard номера подсказок и кнопка меню
func faqKeyboard(reply model.FAQReply) *telebot.ReplyMarkup {
	choices := lo.FilterMap(reply.Suggestions, func(s string, _ int) (model.Choice, bool) {
		number, _, ok := strings.Cut(s, ".")
		return model.Choice{Selector: number}, ok && number != ""
	})
	return keyboard(choices, true)
}
