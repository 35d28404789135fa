package repository

import (
	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами и вариантами ответов
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByQuizID(quizID uint) ([]entity.Question, error)
	CountByQuizID(quizID uint) (int64, error)
	// GetOption возвращает вариант ответа по его ID
	GetOption(optionID uint) (*entity.AnswerOption, error)
	// GetCorrectOption возвращает вариант, помеченный правильным для вопроса.
	// ErrNotFound здесь означает нарушение целостности каталога, а не ошибку клиента.
	GetCorrectOption(questionID uint) (*entity.AnswerOption, error)
}
