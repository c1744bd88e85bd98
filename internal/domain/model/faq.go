package model

// FAQReply ответ FAQ-коллаборатора. Для движка диалога содержимое непрозрачно.
type FAQReply struct {
	Found       bool     `json:"found"`
	Title       string   `json:"title,omitempty"`
	Body        string   `json:"body"`
	Suggestions []string `json:"suggestions,omitempty"`
}
