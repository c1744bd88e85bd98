package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentRecord сохраненный результат завершенной анкеты
type AssessmentRecord struct {
	ID          uuid.UUID        `json:"id"`
	UserID      string           `json:"user_id"`
	Result      AssessmentResult `json:"result"`
	CompletedAt time.Time        `json:"completed_at"`
}
