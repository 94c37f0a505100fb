package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims carried by a FastCRM access token. The
// sid claim ties the token to the refresh session that issued it.
type AccessClaims struct {
	Role      model.Role `json:"role"`
	SessionID uint       `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and validates access tokens and generates the
// opaque refresh-token and client-credential material.
type JWTService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		issuer:     constants.AppName,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh-token lifetime.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken signs an HS256 token for the user. sessionID is
// the refresh session backing this token.
func (s *JWTService) GenerateAccessToken(user *model.User, sessionID uint) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTTL)

	claims := AccessClaims{
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken parses and verifies a token. Any failure, from a
// bad signature to expiry, collapses to ErrUnauthenticated so the
// caller cannot distinguish why a token was rejected.
func (s *JWTService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}
	return claims, nil
}

// UserIDFromClaims parses the subject claim back into a user id.
func UserIDFromClaims(claims *AccessClaims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrUnauthenticated, err)
	}
	return uint(id), nil
}

// GenerateRefreshToken produces an opaque refresh token and its storage
// digest. The raw value goes to the client, the digest to the database.
func (s *JWTService) GenerateRefreshToken() (raw string, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, HashRefreshToken(raw), nil
}

// HashRefreshToken maps a raw refresh token to its lookup digest.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateClientCredentials produces a new client id and secret pair.
// The secret must be bcrypt-hashed before storage.
func GenerateClientCredentials() (clientID string, secret string, err error) {
	idBuf := make([]byte, 8)
	if _, err := rand.Read(idBuf); err != nil {
		return "", "", fmt.Errorf("failed to generate client id: %w", err)
	}

	secretBuf := make([]byte, 32)
	if _, err := rand.Read(secretBuf); err != nil {
		return "", "", fmt.Errorf("failed to generate client secret: %w", err)
	}

	clientID = constants.ClientIDPrefix + hex.EncodeToString(idBuf)
	secret = base64.RawURLEncoding.EncodeToString(secretBuf)
	return clientID, secret, nil
}
