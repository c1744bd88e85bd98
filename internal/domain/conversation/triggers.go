package conversation

import "github.com/IT-Nick/healthbot/internal/domain/model"

// trigger команда, переводящая диалог в главное меню с любого этапа
type trigger int

const (
	triggerNone trigger = iota
	triggerGreeting
	triggerRestart
	triggerCancel
)

// triggers ввод сравнивается целиком после нормализации
var triggers = map[string]trigger{
	"hello":      triggerGreeting,
	"hi":         triggerGreeting,
	"hey":        triggerGreeting,
	"สวัสดี":     triggerGreeting,
	"หวัดดี":     triggerGreeting,
	"สวัสดีครับ": triggerGreeting,
	"สวัสดีค่ะ":  triggerGreeting,

	"start":    triggerRestart,
	"/start":   triggerRestart,
	"restart":  triggerRestart,
	"/restart": triggerRestart,
	"menu":     triggerRestart,
	"/menu":    triggerRestart,
	"เมนู":     triggerRestart,
	"เริ่มใหม่": triggerRestart,

	"cancel":  triggerCancel,
	"/cancel": triggerCancel,
	"ยกเลิก":  triggerCancel,
	"หยุด":    triggerCancel,
}

func classify(input string) trigger {
	return triggers[input]
}

// Тексты уведомлений
const (
	noticeWelcome   = "Hello! I can assess how PM2.5 dust affects your health and answer questions about it. This is initial advice only and does not replace a diagnosis by a doctor."
	noticeCancelled = "Cancelled. Your answers were discarded."
	noteInvalidMenu = "Please choose one of the menu items."
	noteInvalidAns  = "Please answer with one of the options below."
)

// menuItem пункт главного меню
type menuItem struct {
	selector string
	alias    string
	label    string
	synonyms []string
}

var menuItems = []menuItem{
	{
		selector: model.MenuAssessment,
		alias:    "1",
		label:    "Assess my symptoms",
		synonyms: []string{"assess", "ประเมินอาการ", "เริ่มประเมิน", "ตรวจอาการ"},
	},
	{
		selector: model.MenuKnowledge,
		alias:    "2",
		label:    "Learn about PM2.5",
		synonyms: []string{"pm2.5", "ความรู้"},
	},
	{
		selector: model.MenuFAQ,
		alias:    "3",
		label:    "Frequently asked questions",
		synonyms: []string{"help", "คำถาม", "ถามตอบ"},
	},
}

var menuIndex = func() map[string]string {
	idx := make(map[string]string)
	for _, item := range menuItems {
		idx[item.selector] = item.selector
		idx[item.alias] = item.selector
		for _, s := range item.synonyms {
			idx[s] = item.selector
		}
	}
	return idx
}()

// menuSelection возвращает канонический селектор пункта меню
func menuSelection(input string) (string, bool) {
	sel, ok := menuIndex[input]
	return sel, ok
}
