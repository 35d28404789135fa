package repository

import (
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
)

// SessionRepository определяет методы для работы с сессиями прохождения викторин
type SessionRepository interface {
	Create(session *entity.QuizSession) error
	GetByID(id uint) (*entity.QuizSession, error)
	// GetActiveByUserAndQuiz возвращает незавершенную сессию пользователя
	// для викторины (ErrNotFound, если такой нет)
	GetActiveByUserAndQuiz(userID, quizID uint) (*entity.QuizSession, error)

	// ArmQuestionTimer условно записывает серверное время старта текущего вопроса.
	// Запись происходит только если сессия все еще стоит на questionIndex и таймер
	// не взведен (current_question_started_at IS NULL), поэтому из двух конкурентных
	// вызовов победить может только один. Возвращает true, если запись выполнил
	// именно этот вызов.
	ArmQuestionTimer(sessionID uint, questionIndex int, startedAt time.Time) (bool, error)

	// GetLeaderboard возвращает топ завершенных сессий викторины по очкам
	GetLeaderboard(quizID uint, limit int) ([]entity.LeaderboardEntry, error)

	// FinishStale завершает активные сессии, не обновлявшиеся с idleSince.
	// Возвращает количество закрытых сессий.
	FinishStale(idleSince time.Time) (int64, error)
}
