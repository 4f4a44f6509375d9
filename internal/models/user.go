package models

import "time"

// User represents application user. PasswordHash is empty for accounts
// created through Google sign-in; such accounts cannot log in with a password.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255"`
	Picture      string `gorm:"size:512"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
