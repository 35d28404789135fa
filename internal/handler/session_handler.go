package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-miniapp-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
	"github.com/yourusername/quiz-miniapp-api/internal/service"
)

// SessionHandler обрабатывает запросы жизненного цикла сессий
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// StartSessionRequest представляет запрос на старт прохождения викторины
type StartSessionRequest struct {
	QuizID uint `json:"quiz_id" binding:"required"`
}

// QuestionShownRequest - сигнал "вопрос показан пользователю"
type QuestionShownRequest struct {
	QuestionIndex *int `json:"question_index" binding:"required"`
}

// SubmitAnswerRequest представляет отправку ответа на вопрос
type SubmitAnswerRequest struct {
	QuestionID  uint  `json:"question_id" binding:"required"`
	OptionID    uint  `json:"option_id" binding:"required"`
	TimeSpentMs int64 `json:"time_spent_ms"`
}

// StartSession начинает или возобновляет сессию прохождения викторины
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	userID := c.MustGet("user_id").(uint)

	session, err := h.sessionService.StartSession(userID, req.QuizID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session, nil))
}

// GetSession возвращает состояние сессии с зафиксированными ответами
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	sessionID := c.MustGet("sessionID").(uint)

	session, answers, err := h.sessionService.GetSession(userID, sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session, answers))
}

// QuestionShown обрабатывает сигнал о показе вопроса и взводит серверный таймер
func (h *SessionHandler) QuestionShown(c *gin.Context) {
	var req QuestionShownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	userID := c.MustGet("user_id").(uint)
	sessionID := c.MustGet("sessionID").(uint)

	result, err := h.sessionService.MarkQuestionShown(userID, sessionID, *req.QuestionIndex)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SubmitAnswer принимает ответ, оценивает его и возвращает новый счет
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	userID := c.MustGet("user_id").(uint)
	sessionID := c.MustGet("sessionID").(uint)

	result, err := h.sessionService.SubmitAnswer(userID, sessionID, req.QuestionID, req.OptionID, req.TimeSpentMs)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleSessionError преобразует ошибки сервиса сессий в HTTP-ответы.
// Каждому отказу соответствует свой стабильный error_type: клиент различает
// "переспросить состояние" (index_mismatch), "перейти к результатам"
// (session_finished) и "не повторять" (question_already_answered).
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	var mismatch *service.QuestionIndexMismatchError
	if errors.As(err, &mismatch) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      mismatch.Error(),
			"error_type": "question_index_mismatch",
			"expected":   mismatch.Expected,
			"received":   mismatch.Received,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "session_not_found"})
	case errors.Is(err, service.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "quiz_not_found"})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "question_not_found"})
	case errors.Is(err, service.ErrOptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "option_not_found"})
	case errors.Is(err, service.ErrSessionFinished):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "session_finished"})
	case errors.Is(err, service.ErrQuizNotPublished):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "quiz_not_published"})
	case errors.Is(err, service.ErrQuizEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "quiz_empty"})
	case errors.Is(err, service.ErrQuestionAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "question_already_answered"})
	case errors.Is(err, service.ErrNoCorrectOption):
		// Дефект каталога, а не ошибка клиента
		log.Printf("[SessionHandler] Ошибка целостности данных: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "error_type": "quiz_data_integrity"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Session belongs to another user", "error_type": "forbidden"})
	default:
		log.Printf("[SessionHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}
