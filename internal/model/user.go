package model

import "gorm.io/gorm"

// Role is the closed set of authorization levels. Ordering matters:
// Basic < Premium < Admin.
type Role string

const (
	RoleBasic   Role = "basic"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

// Level returns the numeric rank of a role. Unknown roles rank below
// Basic so a corrupted row can never pass a guard check.
func (r Role) Level() int {
	switch r {
	case RoleBasic:
		return 1
	case RolePremium:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r satisfies the given minimum role.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Level() > 0
}

type User struct {
	gorm.Model
	Email        string `gorm:"column:email;unique;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	FullName     string `gorm:"column:full_name"`
	Role         Role   `gorm:"column:role;type:varchar(16);default:basic;not null"`
	IsActive     bool   `gorm:"column:is_active;default:true;not null"`

	Customers     []Customer     `gorm:"foreignKey:OwnerID"`
	OAuth2Clients []OAuth2Client `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}
