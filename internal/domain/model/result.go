package model

// RiskTier уровень риска по итоговому баллу
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// AssessmentResult итог завершенной анкеты. Вычисляется один раз и не изменяется.
type AssessmentResult struct {
	TotalScore      int      `json:"total_score"`
	MaxScore        int      `json:"max_score"`
	SymptomScore    int      `json:"symptom_score"`
	RiskFactorScore int      `json:"risk_factor_score"`
	RiskTier        RiskTier `json:"risk_tier"`
	Recommendations []string `json:"recommendations"`
	Answers         []Answer `json:"answers"`
}
