package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Реализация поверх разделяемого хранилища (Redis) когерентна между инстансами
// сервиса; чисто процессная реализация этого свойства не дает.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Increment(key string) (int64, error)
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Exists(key string) (bool, error)
}
