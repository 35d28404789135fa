package repository

import (
	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с записями ответов
type AnswerRepository interface {
	// SaveWithScore атомарно (в одной транзакции) вставляет запись ответа,
	// прибавляет score delta к total_score сессии, сдвигает current_question_index
	// на следующий вопрос и сбрасывает таймер. При finishSession дополнительно
	// проставляется finished_at. Возвращает новый total_score.
	// Повторный ответ на тот же вопрос сессии отклоняется уникальным индексом
	// и возвращается как ErrAlreadyExists; завершенная сессия - как ErrConflict.
	SaveWithScore(answer *entity.UserAnswer, finishSession bool) (int, error)

	// GetBySession возвращает все ответы сессии в порядке создания
	GetBySession(sessionID uint) ([]entity.UserAnswer, error)
}
