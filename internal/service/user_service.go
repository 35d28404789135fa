package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	"github.com/yourusername/quiz-miniapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
	"github.com/yourusername/quiz-miniapp-api/pkg/telegramauth"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ResolveFromTelegram возвращает пользователя по данным из валидированного initData.
// При первом запросе нового Telegram ID запись создается; при последующих -
// обновляются изменившиеся поля профиля.
func (s *UserService) ResolveFromTelegram(tgUser *telegramauth.WebAppUser) (*entity.User, error) {
	user, err := s.userRepo.GetByTelegramID(tgUser.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by telegram id: %w", err)
		}

		user = &entity.User{
			TelegramID:   tgUser.ID,
			Username:     tgUser.Username,
			FirstName:    tgUser.FirstName,
			LastName:     tgUser.LastName,
			LanguageCode: tgUser.LanguageCode,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("[UserService] Создан пользователь #%d для Telegram ID %d", user.ID, tgUser.ID)
		return user, nil
	}

	// Профиль в Telegram мог измениться; синхронизируем без лишних записей
	if user.Username != tgUser.Username || user.FirstName != tgUser.FirstName || user.LastName != tgUser.LastName {
		user.Username = tgUser.Username
		user.FirstName = tgUser.FirstName
		user.LastName = tgUser.LastName
		if err := s.userRepo.Update(user); err != nil {
			// Не фатально для запроса: идентичность уже установлена
			log.Printf("[UserService] Не удалось обновить профиль пользователя #%d: %v", user.ID, err)
		}
	}

	return user, nil
}

// GetByID возвращает пользователя по внутреннему ID
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
