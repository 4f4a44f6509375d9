package database

import (
	"fmt"

	"github.com/Predaotor/AI-content-Generator/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.TokenUsage{},
		&models.SavedOutput{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
