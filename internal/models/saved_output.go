package models

import "time"

// SavedOutput is a generation result the user chose to keep.
// Rows are immutable once created.
type SavedOutput struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	TemplateType string `gorm:"size:32;index;not null"` // blog_post / email_draft / image
	Content      string `gorm:"type:text"`
	CreatedAt    time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
