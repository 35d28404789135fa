package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий сессий
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create создает новую сессию
func (r *SessionRepo) Create(session *entity.QuizSession) error {
	return r.db.Create(session).Error
}

// GetByID возвращает сессию по ID
func (r *SessionRepo) GetByID(id uint) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetActiveByUserAndQuiz возвращает незавершенную сессию пользователя для викторины
func (r *SessionRepo) GetActiveByUserAndQuiz(userID, quizID uint) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.Where("user_id = ? AND quiz_id = ? AND finished_at IS NULL", userID, quizID).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ArmQuestionTimer условно взводит таймер текущего вопроса.
// Условие в WHERE гарантирует, что из конкурентных дубликатов запись выполнит
// ровно один: повторный UPDATE не находит строку, т.к. таймер уже не NULL.
func (r *SessionRepo) ArmQuestionTimer(sessionID uint, questionIndex int, startedAt time.Time) (bool, error) {
	res := r.db.Model(&entity.QuizSession{}).
		Where("id = ? AND current_question_index = ? AND current_question_started_at IS NULL AND finished_at IS NULL",
			sessionID, questionIndex).
		Update("current_question_started_at", startedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetLeaderboard возвращает топ завершенных сессий викторины по очкам.
// При равенстве очков выше стоит завершивший раньше.
func (r *SessionRepo) GetLeaderboard(quizID uint, limit int) ([]entity.LeaderboardEntry, error) {
	var entries []entity.LeaderboardEntry
	err := r.db.Model(&entity.QuizSession{}).
		Select("users.id AS user_id, users.username, users.first_name, "+
			"MAX(quiz_sessions.total_score) AS score, MIN(quiz_sessions.finished_at) AS finished_at").
		Joins("JOIN users ON users.id = quiz_sessions.user_id").
		Where("quiz_sessions.quiz_id = ? AND quiz_sessions.finished_at IS NOT NULL", quizID).
		Group("users.id, users.username, users.first_name").
		Order("score DESC, finished_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// FinishStale закрывает активные сессии, не обновлявшиеся с idleSince
func (r *SessionRepo) FinishStale(idleSince time.Time) (int64, error) {
	now := time.Now()
	res := r.db.Model(&entity.QuizSession{}).
		Where("finished_at IS NULL AND updated_at < ?", idleSince).
		Updates(map[string]interface{}{
			"finished_at": now,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}
