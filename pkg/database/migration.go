package database

import (
	"github.com/fastcrm/fastcrm/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.OAuth2Client{},
		&model.RefreshToken{},
		&model.Customer{},
		&model.Note{},
	)
}
