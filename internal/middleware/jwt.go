package middleware

import (
	"strings"

	"github.com/fastcrm/fastcrm/internal/constants"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/fastcrm/fastcrm/internal/service"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates bearer tokens. The user row is reloaded
// on every request so a deactivation or role change takes effect before
// the token expires.
type AuthMiddleware struct {
	jwt   *service.JWTService
	users service.UserStore
}

func NewAuthMiddleware(jwtService *service.JWTService, users service.UserStore) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtService, users: users}
}

// RequireAuth validates the bearer token and loads the current user
// into the request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}

		userID, err := service.UserIDFromClaims(claims)
		if err != nil {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}
		if !user.IsActive {
			logger.WarnWithContext(c.Request.Context(), "inactive account presented valid token").
				Uint("user_id", user.ID).
				Log()
			abortWithError(c, apperrors.ErrInactiveAccount)
			return
		}

		c.Set(constants.GinKeyUserID, user.ID)
		c.Set(constants.GinKeyUserEmail, user.Email)
		c.Set(constants.GinKeyUserRole, user.Role)
		c.Set(constants.GinKeySessionID, claims.SessionID)

		c.Request = c.Request.WithContext(
			ctxutil.WithUserID(c.Request.Context(), user.ID),
		)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(
		apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil),
	)
}

// Accessors for values placed by RequireAuth.

func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.GinKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentUserEmail(c *gin.Context) string {
	if v, ok := c.Get(constants.GinKeyUserEmail); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

func CurrentUserRole(c *gin.Context) model.Role {
	if v, ok := c.Get(constants.GinKeyUserRole); ok {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return ""
}

func CurrentSessionID(c *gin.Context) uint {
	if v, ok := c.Get(constants.GinKeySessionID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
