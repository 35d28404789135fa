package repository

import (
	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByTelegramID(telegramID int64) (*entity.User, error)
	Update(user *entity.User) error
}
