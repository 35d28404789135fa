package dto

import (
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// SessionResponse - состояние сессии, отдаваемое клиенту
type SessionResponse struct {
	ID                       uint                   `json:"id"`
	QuizID                   uint                   `json:"quiz_id"`
	CurrentQuestionIndex     int                    `json:"current_question_index"`
	CurrentQuestionStartedAt *time.Time             `json:"current_question_started_at,omitempty"`
	TotalScore               int                    `json:"total_score"`
	FinishedAt               *time.Time             `json:"finished_at,omitempty"`
	Answers                  []AnswerRecordResponse `json:"answers,omitempty"`
}

// AnswerRecordResponse - зафиксированный ответ сессии
type AnswerRecordResponse struct {
	QuestionID  uint  `json:"question_id"`
	OptionID    uint  `json:"option_id"`
	IsCorrect   bool  `json:"is_correct"`
	TimeSpentMs int64 `json:"time_spent_ms"`
	ScoreDelta  int   `json:"score_delta"`
}

// NewSessionResponse преобразует сессию и ее ответы в ответ API
func NewSessionResponse(session *entity.QuizSession, answers []entity.UserAnswer) *SessionResponse {
	resp := &SessionResponse{
		ID:                       session.ID,
		QuizID:                   session.QuizID,
		CurrentQuestionIndex:     session.CurrentQuestionIndex,
		CurrentQuestionStartedAt: session.CurrentQuestionStartedAt,
		TotalScore:               session.TotalScore,
		FinishedAt:               session.FinishedAt,
	}
	for _, a := range answers {
		resp.Answers = append(resp.Answers, AnswerRecordResponse{
			QuestionID:  a.QuestionID,
			OptionID:    a.OptionID,
			IsCorrect:   a.IsCorrect,
			TimeSpentMs: a.TimeSpentMs,
			ScoreDelta:  a.ScoreDelta,
		})
	}
	return resp
}
