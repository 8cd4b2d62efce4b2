package database

import (
	"gorm.io/gorm"

	"github.com/foodyshare/backend/internal/models"
)

// AutoMigrate creates or updates the schema for all application models.
// The unique index on ratings (user_id, recipe_id) enforces one rating
// per user per recipe at the storage layer.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Rating{},
		&models.Comment{},
	)
}
