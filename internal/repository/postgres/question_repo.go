package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает вопрос вместе с вариантами ответов
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос без вариантов ответов
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQuizID возвращает вопросы викторины, упорядоченные по position
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("quiz_id = ?", quizID).
		Order("position ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

// CountByQuizID возвращает количество вопросов викторины
func (r *QuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// GetOption возвращает вариант ответа по ID
func (r *QuestionRepo) GetOption(optionID uint) (*entity.AnswerOption, error) {
	var option entity.AnswerOption
	err := r.db.First(&option, optionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}

// GetCorrectOption возвращает вариант, помеченный правильным для вопроса
func (r *QuestionRepo) GetCorrectOption(questionID uint) (*entity.AnswerOption, error) {
	var option entity.AnswerOption
	err := r.db.Where("question_id = ? AND is_correct = ?", questionID, true).
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}
