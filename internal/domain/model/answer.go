package model

// Answer представляет ответ пользователя на вопрос анкеты
type Answer struct {
	QuestionID string `json:"question_id"`
	Selector   string `json:"selector"`
	Points     int    `json:"points"`
}
