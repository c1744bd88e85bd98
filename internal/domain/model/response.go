package model

// ResponseKind вид исходящего ответа
type ResponseKind string

const (
	KindMenu             ResponseKind = "menu"
	KindQuestion         ResponseKind = "question"
	KindInvalidSelection ResponseKind = "invalid_selection"
	KindResult           ResponseKind = "result"
	KindFAQPassthrough   ResponseKind = "faq_passthrough"
)

// Response исходящий ответ движка диалога.
// Набор реализаций закрыт: транспорт обрабатывает их через type switch.
type Response interface {
	Kind() ResponseKind
	isResponse()
}

// Progress позиция вопроса в анкете, Current начинается с 1
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// MenuResponse главное меню
type MenuResponse struct {
	Items  []Choice `json:"items"`
	Notice string   `json:"notice,omitempty"`
}

// QuestionResponse очередной вопрос анкеты
type QuestionResponse struct {
	QuestionID string   `json:"question_id"`
	Category   Category `json:"category"`
	Prompt     string   `json:"prompt"`
	Choices    []Choice `json:"choices"`
	Progress   Progress `json:"progress"`
}

// InvalidSelectionResponse повтор текущего состояния с пометкой об ошибке ввода.
// Reshown - MenuResponse или QuestionResponse.
type InvalidSelectionResponse struct {
	Note    string   `json:"note"`
	Reshown Response `json:"reshown"`
}

// ResultResponse итог анкеты
type ResultResponse struct {
	Result AssessmentResult `json:"result"`
}

// FAQResponse ответ FAQ-коллаборатора, пересылаемый транспорту как есть
type FAQResponse struct {
	Query string   `json:"query,omitempty"`
	Reply FAQReply `json:"reply"`
}

func (MenuResponse) Kind() ResponseKind             { return KindMenu }
func (QuestionResponse) Kind() ResponseKind         { return KindQuestion }
func (InvalidSelectionResponse) Kind() ResponseKind { return KindInvalidSelection }
func (ResultResponse) Kind() ResponseKind           { return KindResult }
func (FAQResponse) Kind() ResponseKind              { return KindFAQPassthrough }

func (MenuResponse) isResponse()             {}
func (QuestionResponse) isResponse()         {}
func (InvalidSelectionResponse) isResponse() {}
func (ResultResponse) isResponse()           {}
func (FAQResponse) isResponse()              {}
