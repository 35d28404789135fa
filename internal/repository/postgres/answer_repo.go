package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// uniqueViolationCode - код PostgreSQL для нарушения уникального индекса
const uniqueViolationCode = "23505"

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// isUniqueViolation распознает нарушение уникального индекса.
// Тип ошибки зависит от драйвера соединения: pgx (gorm) или lib/pq.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return true
	}
	return false
}

// SaveWithScore атомарно фиксирует ответ и обновляет сессию.
// Вставка записи и обновление счета выполняются в одной транзакции:
// сбой между ними не оставит записанный ответ без начисленных очков и наоборот.
func (r *AnswerRepo) SaveWithScore(answer *entity.UserAnswer, finishSession bool) (int, error) {
	var newTotal int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			// Уникальный индекс (session_id, question_id): повторный ответ отклоняется
			if isUniqueViolation(err) {
				return apperrors.ErrAlreadyExists
			}
			return err
		}

		// Инкремент счета, переход к следующему вопросу и сброс таймера -
		// одним условным UPDATE. Условие finished_at IS NULL повторно проверяет
		// незавершенность сессии уже внутри транзакции.
		row := tx.Raw(`
			UPDATE quiz_sessions
			SET total_score = total_score + ?,
			    current_question_index = current_question_index + 1,
			    current_question_started_at = NULL,
			    finished_at = CASE WHEN ? THEN NOW() ELSE finished_at END,
			    updated_at = NOW()
			WHERE id = ? AND finished_at IS NULL
			RETURNING total_score`,
			answer.ScoreDelta, finishSession, answer.SessionID).Row()

		if err := row.Scan(&newTotal); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Сессию успели завершить конкурентным запросом
				return apperrors.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newTotal, nil
}

// GetBySession возвращает все ответы сессии в порядке создания
func (r *AnswerRepo) GetBySession(sessionID uint) ([]entity.UserAnswer, error) {
	var answers []entity.UserAnswer
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}
