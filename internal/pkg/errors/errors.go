package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (невалидный initData).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда действие выполняется над чужим ресурсом
	// или без нужных прав.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists используется при нарушении уникальности
	// (например, повторный ответ на тот же вопрос сессии).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrConflict используется для конфликтов состояния
	// (например, операция над завершенной сессией).
	ErrConflict = errors.New("resource state conflict")
)
