package repository

import (
	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с каталогом викторин
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	Update(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину с вопросами и вариантами ответов,
	// вопросы упорядочены по position
	GetWithQuestions(id uint) (*entity.Quiz, error)
	ListPublished() ([]entity.Quiz, error)
}
