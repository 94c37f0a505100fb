package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testUser(id uint, role model.Role) *model.User {
	u := &model.User{
		Email:    "user@example.com",
		Role:     role,
		IsActive: true,
	}
	u.ID = id
	return u
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute, 168*time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(testUser(42, model.RolePremium), 7)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	userID, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, model.RolePremium, claims.Role)
	assert.Equal(t, uint(7), claims.SessionID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken(testUser(1, model.RoleBasic), 1)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", time.Minute, time.Hour)

	token, _, err := issuer.GenerateAccessToken(testUser(1, model.RoleBasic), 1)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken(testUser(1, model.RoleBasic), 1)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Flip a character in the payload.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestValidateRejectsUnsignedAlgorithm(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	raw1, digest1, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	raw2, digest2, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
	assert.NotEqual(t, digest1, digest2)
	assert.Len(t, digest1, 64)
	assert.Equal(t, digest1, HashRefreshToken(raw1))
	assert.NotContains(t, digest1, raw1)
}

func TestGenerateClientCredentials(t *testing.T) {
	id1, secret1, err := GenerateClientCredentials()
	require.NoError(t, err)
	id2, secret2, err := GenerateClientCredentials()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id1, "fcrm_"))
	assert.Len(t, id1, len("fcrm_")+16)
	assert.NotEqual(t, id1, id2)
	assert.NotEqual(t, secret1, secret2)
	assert.NotEmpty(t, secret1)
}

// Guard against accidentally mapping store misses to the wrong sentinel.
func TestRecordNotFoundIsNotDomainError(t *testing.T) {
	assert.False(t, errors.Is(gorm.ErrRecordNotFound, apperrors.ErrInvalidSession))
}
