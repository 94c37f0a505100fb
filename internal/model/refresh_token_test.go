package model

import (
	"testing"
	"time"
)

func TestRefreshTokenActive(t *testing.T) {
	now := time.Now().UTC()
	revoked := now.Add(-time.Minute)

	tests := []struct {
		name  string
		token RefreshToken
		want  bool
	}{
		{
			name:  "live token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "expired token",
			token: RefreshToken{ExpiresAt: now.Add(-time.Second)},
			want:  false,
		},
		{
			name:  "revoked token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
			want:  false,
		},
		{
			name:  "revoked and expired",
			token: RefreshToken{ExpiresAt: now.Add(-time.Hour), RevokedAt: &revoked},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Active(now); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
