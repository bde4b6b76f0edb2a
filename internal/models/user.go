package models

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Character string    `json:"character"`
	Stats     UserStats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats is mutated exclusively by the answer service; the three fields
// are always written together.
type UserStats struct {
	TotalXP         int        `json:"total_xp"`
	CurrentStreak   int        `json:"current_streak"`
	LastAttemptDate *time.Time `json:"last_attempt_date"`
}

type LeaderboardEntry struct {
	Username  string `json:"username"`
	Character string `json:"character"`
	TotalXP   int    `json:"total_xp"`
}
