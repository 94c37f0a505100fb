package dto

import "time"

// RegisterRequest is the payload for user self-registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,password"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
}

// LoginForm is the OAuth2-password-style form accepted by POST /auth/token.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// OAuth2TokenRequest is the client-credentials exchange form.
// grant_type is optional; client_credentials is the only grant.
type OAuth2TokenRequest struct {
	GrantType    string `form:"grant_type"`
	ClientID     string `form:"client_id" binding:"required"`
	ClientSecret string `form:"client_secret" binding:"required"`
}

// RefreshRequest carries the opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is the token pair returned by login, exchange and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ClientCredentialsResponse exposes the OAuth2 client secret exactly once,
// at creation or regeneration time. Only the hash is stored.
type ClientCredentialsResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	User              UserResponse              `json:"user"`
	ClientCredentials ClientCredentialsResponse `json:"client_credentials"`
}

// SessionResponse describes one active refresh session.
type SessionResponse struct {
	ID         uint      `json:"id"`
	DeviceInfo string     `json:"device_info"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Current    bool       `json:"current"`
}

// OAuth2ClientResponse describes a registered client without its secret.
type OAuth2ClientResponse struct {
	ID         uint       `json:"id"`
	ClientID   string     `json:"client_id"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}
