package assessment_history_handler

import "time"

// AssessmentSummary краткая запись истории
type AssessmentSummary struct {
	ID          string    `json:"id"`
	TotalScore  int       `json:"total_score"`
	MaxScore    int       `json:"max_score"`
	RiskTier    string    `json:"risk_tier"`
	CompletedAt time.Time `json:"completed_at"`
	ReportURL   string    `json:"report_url"`
}

// AssessmentHistoryResponse структура для ответа
type AssessmentHistoryResponse struct {
	UserID      string              `json:"user_id"`
	Total       int                 `json:"total"`
	Assessments []AssessmentSummary `json:"assessments"`
}
