package models

import "time"

// TokenUsage tracks how many generation tokens a user spent on the
// current calendar day (UTC). One row per user; the unique index on
// UserID backs the insert-if-absent creation on first use.
// The counter is reset whenever LastUsed falls on an earlier day.
type TokenUsage struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"uniqueIndex;not null"`
	TokensUsed int       `gorm:"not null;default:0"`
	LastUsed   time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
