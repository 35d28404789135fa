package entity

import (
	"math"
	"time"
)

// Константы начисления очков.
// Бонус за скорость убывает линейно между быстрым и медленным порогом,
// без дискретных "ступенек", чтобы на границе корзины нечего было эксплуатировать.
const (
	BaseScore    = 100
	MaxTimeBonus = 50

	// FastAnswerMs - порог, до которого начисляется максимальный бонус
	FastAnswerMs = 2000
	// SlowAnswerMs - порог, после которого бонус равен нулю
	SlowAnswerMs = 15000
)

// Question представляет вопрос викторины
type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	QuizID    uint           `gorm:"not null;index" json:"quiz_id"`
	Text      string         `gorm:"size:500;not null" json:"text"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	Options   []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectOption возвращает вариант, помеченный правильным, из загруженных вариантов.
// Второе значение false означает нарушение целостности каталога:
// у каждого вопроса должен быть ровно один правильный вариант.
func (q *Question) CorrectOption() (*AnswerOption, bool) {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// CalculatePoints рассчитывает очки за ответ.
// 0 за неправильный ответ; за правильный - BaseScore плюс бонус за скорость:
// MaxTimeBonus при timeSpentMs <= FastAnswerMs, 0 при timeSpentMs >= SlowAnswerMs,
// между порогами бонус убывает линейно с округлением до целого.
func (q *Question) CalculatePoints(isCorrect bool, timeSpentMs int64) int {
	if !isCorrect {
		return 0
	}
	if timeSpentMs < 0 {
		timeSpentMs = 0
	}

	switch {
	case timeSpentMs <= FastAnswerMs:
		return BaseScore + MaxTimeBonus
	case timeSpentMs >= SlowAnswerMs:
		return BaseScore
	default:
		bonus := math.Round(float64(MaxTimeBonus) * float64(SlowAnswerMs-timeSpentMs) / float64(SlowAnswerMs-FastAnswerMs))
		return BaseScore + int(bonus)
	}
}
