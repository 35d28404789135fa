package entity

import (
	"time"
)

// UserAnswer представляет зафиксированный ответ на один вопрос сессии.
// Запись append-only; уникальный индекс (session_id, question_id) гарантирует
// не более одного ответа на вопрос в рамках сессии.
type UserAnswer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"not null;uniqueIndex:idx_session_question" json:"session_id"`
	QuestionID  uint      `gorm:"not null;uniqueIndex:idx_session_question" json:"question_id"`
	OptionID    uint      `gorm:"not null" json:"option_id"`
	IsCorrect   bool      `gorm:"not null" json:"is_correct"`
	TimeSpentMs int64     `gorm:"not null" json:"time_spent_ms"`
	ScoreDelta  int       `gorm:"not null;default:0" json:"score_delta"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserAnswer) TableName() string {
	return "user_answers"
}
