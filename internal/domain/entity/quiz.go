package entity

import (
	"time"
)

// Quiz представляет викторину (каталог, неизменяемый во время прохождения)
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionCount возвращает количество вопросов (для загруженной викторины)
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}
