package model

import "time"

// Stage этап диалога пользователя
type Stage string

const (
	StageIdle         Stage = "idle"
	StageMainMenu     Stage = "main_menu"
	StageInAssessment Stage = "in_assessment"
	StageCompleted    Stage = "completed"
	StageFAQBrowsing  Stage = "faq_browsing"
)

// Session состояние диалога одного пользователя
type Session struct {
	UserID         string    `json:"user_id"`
	Stage          Stage     `json:"stage"`
	Cursor         int       `json:"cursor"`
	Answers        []Answer  `json:"answers"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// NewSession создает чистую сессию на этапе idle
func NewSession(userID string, now time.Time) Session {
	return Session{
		UserID:         userID,
		Stage:          StageIdle,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Reset сбрасывает прогресс анкеты и возвращает сессию в idle
func (s *Session) Reset() {
	s.Stage = StageIdle
	s.Cursor = 0
	s.Answers = nil
}

// Clone возвращает копию сессии, не разделяющую срез ответов с оригиналом
func (s Session) Clone() Session {
	cp := s
	if s.Answers != nil {
		cp.Answers = make([]Answer, len(s.Answers))
		copy(cp.Answers, s.Answers)
	}
	return cp
}

// ExpiredAt сообщает, истекла ли сессия к моменту now при окне неактивности ttl
func (s Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastActivityAt) > ttl
}
