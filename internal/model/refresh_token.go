package model

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is one login session. The raw token value never touches
// the database; only its SHA-256 hex digest is stored, so the hash column
// doubles as the lookup key.
type RefreshToken struct {
	gorm.Model
	UserID     uint       `gorm:"column:user_id;index;not null"`
	TokenHash  string     `gorm:"column:token_hash;uniqueIndex;size:64;not null"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
	DeviceInfo string     `gorm:"column:device_info;size:100"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
}

// Active reports whether the session can still be exchanged.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
