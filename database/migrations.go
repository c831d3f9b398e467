package database

import (
	"taskboard/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations brings the users and tasks tables up to date.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	if err != nil {
		zap.L().Error("migration failed", zap.Error(err))
		return err
	}

	return nil
}
