package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-miniapp-api/internal/config"
	"github.com/yourusername/quiz-miniapp-api/internal/service"
	"github.com/yourusername/quiz-miniapp-api/pkg/telegramauth"
)

// InitDataHeader - заголовок, в котором мини-апп передает подписанный initData
const InitDataHeader = "X-Telegram-Init-Data"

// AuthMiddleware аутентифицирует запросы мини-аппа по Telegram initData
type AuthMiddleware struct {
	validator   *telegramauth.Validator
	userService *service.UserService
	telegramCfg *config.TelegramConfig
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(
	validator *telegramauth.Validator,
	userService *service.UserService,
	telegramCfg *config.TelegramConfig,
) *AuthMiddleware {
	return &AuthMiddleware{
		validator:   validator,
		userService: userService,
		telegramCfg: telegramCfg,
	}
}

// extractInitData достает initData из заголовка X-Telegram-Init-Data,
// либо из Authorization в формате "tma {initData}"
func extractInitData(c *gin.Context) string {
	if initData := c.GetHeader(InitDataHeader); initData != "" {
		return initData
	}
	authHeader := c.GetHeader("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "tma" {
		return parts[1]
	}
	return ""
}

// RequireAuth проверяет подпись initData и устанавливает личность в контекст.
// Каждый запрос проверяется заново: состояния сессии на сервере нет,
// доверие полностью выводится из подписи Telegram.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := extractInitData(c)

		data, err := m.validator.Validate(initData)
		if err != nil {
			m.abortWithAuthError(c, err)
			return
		}

		tgUser, err := data.User()
		if err != nil {
			m.abortWithAuthError(c, err)
			return
		}

		user, err := m.userService.ResolveFromTelegram(tgUser)
		if err != nil {
			log.Printf("[AuthMiddleware] Ошибка разрешения пользователя Telegram ID %d: %v", tgUser.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user", "error_type": "internal_server_error"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("telegram_id", user.TelegramID)
		c.Set("is_admin", m.telegramCfg.IsAdmin(user.TelegramID))

		c.Next()
	}
}

// AdminOnly пропускает только пользователей из allow-list администраторов.
// Должен применяться ПОСЛЕ RequireAuth.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
			c.Abort()
			return
		}

		isAdmin, exists := c.Get("is_admin")
		if !exists || !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required", "error_type": "forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// abortWithAuthError преобразует ошибку валидации initData в HTTP-ответ.
// Код ошибки отдается клиенту как есть - это стабильный тег,
// по которому мини-апп решает, нужна ли переаутентификация.
func (m *AuthMiddleware) abortWithAuthError(c *gin.Context, err error) {
	var vErr *telegramauth.ValidationError
	if !errors.As(err, &vErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		c.Abort()
		return
	}

	status := http.StatusUnauthorized
	if vErr.Code == telegramauth.CodeNoBotToken {
		// Отсутствие токена - ошибка конфигурации сервера, а не клиента
		log.Println("[AuthMiddleware] CRITICAL: TELEGRAM_BOT_TOKEN не сконфигурирован")
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": vErr.Message, "error_type": vErr.Code})
	c.Abort()
}
