package database

import (
	"Inkwell/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every table and index the store relies on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.DailyStat{},
	)
}
