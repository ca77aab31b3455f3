package storage

import (
	"time"

	"cloud.google.com/go/civil"
)

// User is the persisted user record. Level is stored for readers of the raw
// JSON but the engine always recomputes it from XP. LastStreakDate is nil until
// the first day that counts toward the streak.
type User struct {
	ID                    string      `json:"id"`
	Username              string      `json:"username"`
	Email                 string      `json:"email"`
	XP                    int         `json:"xp"`
	Level                 int         `json:"level"`
	Streak                int         `json:"streak"`
	LastActiveDate        civil.Date  `json:"lastActiveDate"`
	LastStreakDate        *civil.Date `json:"lastStreakDate,omitempty"`
	XPLocked              bool        `json:"xpLocked"`
	XPReduced             bool        `json:"xpReduced"`
	ConsecutiveMissedDays int         `json:"consecutiveMissedDays"`
	CreatedAt             time.Time   `json:"createdAt"`
}

type Quest struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	XP            int        `json:"xp"`
	Completed     bool       `json:"completed"`
	DueDate       civil.Date `json:"dueDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	Recurring     bool       `json:"recurring"`
	RecurringDays []int      `json:"recurringDays,omitempty"`
	IsDaily       bool       `json:"isDaily,omitempty"`
}

type SystemMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
