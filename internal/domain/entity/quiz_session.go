package entity

import (
	"time"
)

// QuizSession представляет одну попытку пользователя пройти викторину.
// Пока FinishedAt == nil, сессия активна и принимает ровно вопрос с индексом
// CurrentQuestionIndex; после завершения сессия не изменяется.
// CurrentQuestionStartedAt взводится не более одного раза на вопрос:
// это серверная точка старта таймера текущего вопроса.
type QuizSession struct {
	ID                       uint       `gorm:"primaryKey" json:"id"`
	UserID                   uint       `gorm:"not null;index" json:"user_id"`
	QuizID                   uint       `gorm:"not null;index" json:"quiz_id"`
	CurrentQuestionIndex     int        `gorm:"not null;default:0" json:"current_question_index"`
	CurrentQuestionStartedAt *time.Time `json:"current_question_started_at,omitempty"`
	TotalScore               int        `gorm:"not null;default:0" json:"total_score"`
	FinishedAt               *time.Time `gorm:"index" json:"finished_at,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// IsFinished проверяет, завершена ли сессия
func (s *QuizSession) IsFinished() bool {
	return s.FinishedAt != nil
}

// IsTimerArmed проверяет, взведен ли таймер текущего вопроса
func (s *QuizSession) IsTimerArmed() bool {
	return s.CurrentQuestionStartedAt != nil
}
