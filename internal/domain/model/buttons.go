package model

// Селекторы главного меню. Привязаны к переходам в conversation.
// Не следует добавлять/изменять константы без изменения логики движка диалога
const (
	MenuAssessment = "assessment"
	MenuKnowledge  = "knowledge"
	MenuFAQ        = "faq"
)
