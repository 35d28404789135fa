package dto

import (
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// OptionResponse - вариант ответа, отдаваемый клиенту.
// Флаг правильности намеренно отсутствует.
type OptionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse - вопрос, отдаваемый клиенту
type QuestionResponse struct {
	ID       uint             `json:"id"`
	Text     string           `json:"text"`
	Position int              `json:"position"`
	Options  []OptionResponse `json:"options"`
}

// QuizResponse - викторина, отдаваемая клиенту
type QuizResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	IsPublished   bool               `json:"is_published"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewQuizResponse преобразует сущность в ответ API.
// withQuestions управляет включением вопросов (список каталога их не содержит).
func NewQuizResponse(quiz *entity.Quiz, withQuestions bool) *QuizResponse {
	resp := &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		IsPublished:   quiz.IsPublished,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     quiz.CreatedAt,
	}
	if !withQuestions {
		return resp
	}
	for _, q := range quiz.Questions {
		qr := QuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Position: q.Position,
		}
		for _, opt := range q.Options {
			qr.Options = append(qr.Options, OptionResponse{ID: opt.ID, Text: opt.Text})
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}
