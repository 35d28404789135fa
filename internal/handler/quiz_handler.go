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

// QuizHandler обрабатывает запросы каталога викторин и лидербордов
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// ListQuizzes возвращает опубликованные викторины
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListPublished()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	responses := make([]*dto.QuizResponse, len(quizzes))
	for i := range quizzes {
		responses[i] = dto.NewQuizResponse(&quizzes[i], false)
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": responses})
}

// GetQuiz возвращает викторину с вопросами (без флагов правильности)
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetForPlay(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// GetLeaderboard возвращает топ викторины
func (h *QuizHandler) GetLeaderboard(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	entries, err := h.quizService.Leaderboard(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "entries": entries})
}

// GetDuelOrder возвращает детерминированный порядок вопросов для дуэли
func (h *QuizHandler) GetDuelOrder(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	duelKey := c.Query("key")
	if duelKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duel key is required", "error_type": "invalid_request"})
		return
	}

	order, err := h.quizService.DuelQuestionOrder(quizID, duelKey)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "question_order": order})
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsPublished bool   `json:"is_published"`
}

// CreateQuiz создает новую викторину (администратор)
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	quiz, err := h.quizService.CreateQuiz(req.Title, req.Description, req.IsPublished)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, false))
}

// UpdateQuiz обновляет викторину (администратор)
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, req.Title, req.Description, req.IsPublished)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, false))
}

// OptionRequest - вариант ответа при создании вопроса
type OptionRequest struct {
	Text      string `json:"text" binding:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

// AddQuestionRequest представляет запрос на добавление вопроса
type AddQuestionRequest struct {
	Text     string          `json:"text" binding:"required,max=500"`
	Position int             `json:"position"`
	Options  []OptionRequest `json:"options" binding:"required,min=2,dive"`
}

// AddQuestion добавляет вопрос к викторине (администратор)
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	options := make([]service.OptionInput, len(req.Options))
	for i, opt := range req.Options {
		options[i] = service.OptionInput{Text: opt.Text, IsCorrect: opt.IsCorrect}
	}

	question, err := h.quizService.AddQuestion(quizID, req.Text, req.Position, options)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// handleQuizError преобразует ошибки сервиса викторин в HTTP-ответы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "quiz_not_found"})
	case errors.Is(err, service.ErrQuizNotPublished):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "quiz_not_published"})
	case errors.Is(err, service.ErrQuizEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "quiz_empty"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_failed"})
	default:
		log.Printf("[QuizHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}
