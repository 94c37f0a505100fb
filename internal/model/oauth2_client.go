package model

import (
	"time"

	"gorm.io/gorm"
)

// OAuth2Client is a machine-credential pair bound to a user. The secret
// is bcrypt-hashed at rest; the plaintext is handed out exactly once at
// creation and can only be regenerated, never recovered.
type OAuth2Client struct {
	gorm.Model
	ClientID   string     `gorm:"column:client_id;uniqueIndex;size:32;not null"`
	SecretHash string     `gorm:"column:secret_hash;not null"`
	UserID     uint       `gorm:"column:user_id;index;not null"`
	IsActive   bool       `gorm:"column:is_active;default:true;not null"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
}
