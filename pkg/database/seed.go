package database

import (
	"github.com/fastcrm/fastcrm/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin user credentials
type DefaultAdmin struct {
	Email    string
	Password string
	FullName string
}

// GetDefaultAdmin returns the default admin user
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		Email:    "admin@fastcrm.local",
		Password: "Admin@123", // Change this in production!
		FullName: "FastCRM Admin",
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedAdminUser(db)
}

// SeedAdminUser creates the default admin user if not exists
func SeedAdminUser(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)

	if result.Error == nil {
		// User already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Email:        admin.Email,
		PasswordHash: string(hashedPassword),
		FullName:     admin.FullName,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	return db.Create(&user).Error
}
