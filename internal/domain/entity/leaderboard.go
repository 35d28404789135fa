package entity

import (
	"time"
)

// LeaderboardEntry - строка лидерборда викторины.
// Не является таблицей: вычисляется по завершенным сессиям.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"first_name"`
	Score      int       `json:"score"`
	FinishedAt time.Time `json:"finished_at"`
}
