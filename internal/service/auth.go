package service

import (
	"context"
	"errors"
	"time"

	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/fastcrm/fastcrm/pkg/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the slice of user persistence the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// RefreshTokenStore persists login sessions keyed by token digest.
type RefreshTokenStore interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Rotate(ctx context.Context, oldHash string, replacement *model.RefreshToken) error
	RevokeByID(ctx context.Context, id, userID uint) error
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
	ListActiveForUser(ctx context.Context, userID uint) ([]model.RefreshToken, error)
}

// OAuth2ClientStore persists machine credentials.
type OAuth2ClientStore interface {
	Create(ctx context.Context, client *model.OAuth2Client) error
	FindByClientID(ctx context.Context, clientID string) (*model.OAuth2Client, error)
	ListForUser(ctx context.Context, userID uint) ([]model.OAuth2Client, error)
	DeactivateAllForUser(ctx context.Context, userID uint) error
	TouchLastUsed(ctx context.Context, id uint) error
}

// AuthService implements registration and the full token lifecycle.
type AuthService struct {
	users   UserStore
	tokens  RefreshTokenStore
	clients OAuth2ClientStore
	jwt     *JWTService
}

func NewAuthService(users UserStore, tokens RefreshTokenStore, clients OAuth2ClientStore, jwtService *JWTService) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		clients: clients,
		jwt:     jwtService,
	}
}

// Register creates a user plus their initial OAuth2 client. The client
// secret in the response is the only time it is ever visible.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Register")

	// Binding validates this too; the service enforces it for callers
	// that do not come through the HTTP layer.
	if len(req.Password) < validation.MinPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         model.RoleBasic,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	creds, err := s.issueClientCredentials(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "user registered").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	return &dto.RegisterResponse{
		User:              dto.NewUserResponse(user),
		ClientCredentials: *creds,
	}, nil
}

// Login verifies password credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password, deviceInfo string) (*dto.TokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Login")

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.WarnWithContext(ctx, "login rejected").
			String("email", email).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInactiveAccount
	}

	return s.openSession(ctx, user, deviceInfo)
}

// ExchangeClientCredentials implements the OAuth2 client_credentials
// grant. A successful exchange behaves like a login: it opens a
// session and returns a full token pair. An unknown id, wrong secret,
// retired client or inactive owner all collapse to InvalidClient.
func (s *AuthService) ExchangeClientCredentials(ctx context.Context, req dto.OAuth2TokenRequest) (*dto.TokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "ExchangeClientCredentials")

	if req.GrantType != "" && req.GrantType != "client_credentials" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput,
			errors.New("unsupported grant_type: "+req.GrantType))
	}

	client, err := s.clients.FindByClientID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidClient
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !client.IsActive {
		return nil, apperrors.ErrInvalidClient
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(req.ClientSecret)); err != nil {
		logger.WarnWithContext(ctx, "client exchange rejected").
			String("client_id", req.ClientID).
			Log()
		return nil, apperrors.ErrInvalidClient
	}

	user, err := s.users.FindByID(ctx, client.UserID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidClient
	}

	if err := s.clients.TouchLastUsed(ctx, client.ID); err != nil {
		logger.WarnWithContext(ctx, "failed to record client usage").
			Uint("client_db_id", client.ID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "client credentials exchanged").
		String("client_id", client.ClientID).
		Uint("user_id", user.ID).
		Log()

	return s.openSession(ctx, user, "oauth2:"+client.ClientID)
}

// Refresh rotates the presented refresh token and issues a fresh pair.
// A replayed or revoked token is rejected, and a replay loses the
// rotation race inside the store.
func (s *AuthService) Refresh(ctx context.Context, rawToken, deviceInfo string) (*dto.TokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Refresh")

	oldHash := HashRefreshToken(rawToken)
	session, err := s.tokens.FindByHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !session.Active(time.Now().UTC()) {
		return nil, apperrors.ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveAccount
	}

	rawReplacement, replacementHash, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if deviceInfo == "" {
		deviceInfo = session.DeviceInfo
	}
	replacement := &model.RefreshToken{
		UserID:     user.ID,
		TokenHash:  replacementHash,
		ExpiresAt:  time.Now().UTC().Add(s.jwt.RefreshTTL()),
		DeviceInfo: truncateDeviceInfo(deviceInfo),
	}

	if err := s.tokens.Rotate(ctx, oldHash, replacement); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race: someone already rotated this token.
			logger.WarnWithContext(ctx, "refresh token replay detected").
				Uint("user_id", user.ID).
				Uint("session_id", session.ID).
				Log()
			return nil, apperrors.ErrInvalidSession
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	accessToken, _, err := s.jwt.GenerateAccessToken(user, replacement.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rawReplacement,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.jwt.AccessTTL().Seconds()),
	}, nil
}

// Logout revokes the session behind the presented access token. A
// session revoked twice stays revoked, and a token without a sid claim
// has nothing to revoke, so both cases succeed quietly.
func (s *AuthService) Logout(ctx context.Context, userID, sessionID uint) error {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "Logout")

	if sessionID == 0 {
		return nil
	}

	err := s.tokens.RevokeByID(ctx, sessionID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "session revoked").
		Uint("user_id", userID).
		Uint("session_id", sessionID).
		Log()
	return nil
}

// LogoutAll revokes every session of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "LogoutAll")

	count, err := s.tokens.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return count, nil
}

// ListSessions returns the user's active sessions, flagging the one
// behind the presented token.
func (s *AuthService) ListSessions(ctx context.Context, userID, currentSessionID uint) ([]dto.SessionResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "ListSessions")

	sessions, err := s.tokens.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		t := &sessions[i]
		out = append(out, dto.SessionResponse{
			ID:         t.ID,
			DeviceInfo: t.DeviceInfo,
			CreatedAt:  t.CreatedAt,
			LastUsedAt: t.LastUsedAt,
			ExpiresAt:  t.ExpiresAt,
			Current:    t.ID == currentSessionID,
		})
	}
	return out, nil
}

// RevokeSession revokes one named session owned by the user.
func (s *AuthService) RevokeSession(ctx context.Context, userID, sessionID uint) error {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "RevokeSession")

	if err := s.tokens.RevokeByID(ctx, sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSessionNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// ListClients returns the user's OAuth2 clients without secrets.
func (s *AuthService) ListClients(ctx context.Context, userID uint) ([]dto.OAuth2ClientResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "ListClients")

	clients, err := s.clients.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.OAuth2ClientResponse, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		out = append(out, dto.OAuth2ClientResponse{
			ID:         c.ID,
			ClientID:   c.ClientID,
			IsActive:   c.IsActive,
			CreatedAt:  c.CreatedAt,
			LastUsedAt: c.LastUsedAt,
		})
	}
	return out, nil
}

// RegenerateClientCredentials retires the user's existing clients and
// issues a fresh pair. The new secret is visible once.
func (s *AuthService) RegenerateClientCredentials(ctx context.Context, userID uint) (*dto.ClientCredentialsResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "auth_service", "RegenerateClientCredentials")

	if err := s.clients.DeactivateAllForUser(ctx, userID); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return s.issueClientCredentials(ctx, userID)
}

func (s *AuthService) issueClientCredentials(ctx context.Context, userID uint) (*dto.ClientCredentialsResponse, error) {
	clientID, secret, err := GenerateClientCredentials()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	client := &model.OAuth2Client{
		ClientID:   clientID,
		SecretHash: string(secretHash),
		UserID:     userID,
		IsActive:   true,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.ClientCredentialsResponse{
		ClientID:     clientID,
		ClientSecret: secret,
	}, nil
}

func (s *AuthService) openSession(ctx context.Context, user *model.User, deviceInfo string) (*dto.TokenResponse, error) {
	rawRefresh, refreshHash, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	session := &model.RefreshToken{
		UserID:     user.ID,
		TokenHash:  refreshHash,
		ExpiresAt:  time.Now().UTC().Add(s.jwt.RefreshTTL()),
		DeviceInfo: truncateDeviceInfo(deviceInfo),
	}
	if err := s.tokens.Create(ctx, session); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	accessToken, _, err := s.jwt.GenerateAccessToken(user, session.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "session opened").
		Uint("user_id", user.ID).
		Uint("session_id", session.ID).
		Log()

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.jwt.AccessTTL().Seconds()),
	}, nil
}

// truncateDeviceInfo keeps the user agent within the column size.
func truncateDeviceInfo(deviceInfo string) string {
	const max = 100
	if len(deviceInfo) > max {
		return deviceInfo[:max]
	}
	return deviceInfo
}
