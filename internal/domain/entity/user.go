package entity

import (
	"time"
)

// User представляет пользователя мини-аппа.
// Идентичность приходит из Telegram: TelegramID - единственный внешний признак личности,
// запись создается при первом валидном запросе нового пользователя.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TelegramID   int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Username     string    `gorm:"size:64" json:"username,omitempty"`
	FirstName    string    `gorm:"size:128" json:"first_name"`
	LastName     string    `gorm:"size:128" json:"last_name,omitempty"`
	LanguageCode string    `gorm:"size:8" json:"language_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// DisplayName возвращает имя для отображения в лидерборде
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
