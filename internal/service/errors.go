package service

import (
	"errors"
	"fmt"
)

// Ошибки состояния сессий и каталога.
// Каждому отказу соответствует свой стабильный error_type на HTTP-слое,
// чтобы клиент мог реагировать по-разному (redirect / retry / ресинхронизация).
var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizNotPublished = errors.New("quiz is not published")
	ErrQuizEmpty        = errors.New("quiz has no questions")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFinished  = errors.New("session is already finished")
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")

	// ErrQuestionAlreadyAnswered - повторный ответ на вопрос сессии.
	// Дубликаты отклоняются, а не перезаписываются: иначе клиент мог бы
	// повторять попытки, пока не выпадет максимальный бонус за скорость.
	ErrQuestionAlreadyAnswered = errors.New("question already answered in this session")

	// ErrNoCorrectOption - нарушение целостности каталога: у вопроса нет
	// варианта, помеченного правильным. Это дефект данных, не ошибка клиента,
	// и он не должен молча оцениваться как неправильный ответ.
	ErrNoCorrectOption = errors.New("question has no correct option")
)

// QuestionIndexMismatchError возвращается, когда клиент сигналит не тот вопрос,
// на котором стоит сессия. Оба индекса включены в ошибку, чтобы клиент мог
// ресинхронизироваться без угадывания.
type QuestionIndexMismatchError struct {
	Expected int
	Received int
}

func (e *QuestionIndexMismatchError) Error() string {
	return fmt.Sprintf("question index mismatch: expected %d, received %d", e.Expected, e.Received)
}
