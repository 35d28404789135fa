package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-miniapp-api/internal/service"
)

// UserHandler обрабатывает запросы профиля пользователя
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe возвращает профиль аутентифицированного пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	user, err := h.userService.GetByID(userID)
	if err != nil {
		log.Printf("[UserHandler] Ошибка загрузки пользователя #%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"telegram_id": user.TelegramID,
		"username":    user.Username,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"is_admin":    c.GetBool("is_admin"),
	})
}
