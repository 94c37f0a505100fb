package handler

import (
	"net/http"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, the token lifecycle and the
// current-user surface.
type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/token. The form field names follow the
// OAuth2 password convention: username carries the email.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Login(
		c.Request.Context(),
		form.Username,
		form.Password,
		c.GetHeader(constants.HeaderUserAgent),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OAuth2Token handles POST /api/auth/oauth2/token, the
// client_credentials grant.
func (h *AuthHandler) OAuth2Token(c *gin.Context) {
	var form dto.OAuth2TokenRequest
	if err := c.ShouldBind(&form); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.ExchangeClientCredentials(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh. The presented token is
// rotated; replaying it afterwards fails.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Refresh(
		c.Request.Context(),
		req.RefreshToken,
		c.GetHeader(constants.HeaderUserAgent),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout, revoking the session behind the
// presented access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.auth.Logout(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentSessionID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("logged out"))
}

// LogoutAll handles POST /api/auth/logout-all.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	count, err := h.auth.LogoutAll(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.ResponseFieldMessage: "all sessions revoked",
		"revoked":                      count,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.users.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMe handles PATCH /api/auth/me.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSessions handles GET /api/auth/me/tokens.
func (h *AuthHandler) ListSessions(c *gin.Context) {
	sessions, err := h.auth.ListSessions(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentSessionID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.ResponseFieldData: sessions})
}

// RevokeSession handles DELETE /api/auth/me/tokens/:id.
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.auth.RevokeSession(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("session revoked"))
}

// ListClients handles GET /api/auth/me/oauth2-credentials.
func (h *AuthHandler) ListClients(c *gin.Context) {
	clients, err := h.auth.ListClients(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.ResponseFieldData: clients})
}

// RegenerateClients handles POST /api/auth/me/oauth2-credentials/regenerate.
// The returned secret is shown exactly once.
func (h *AuthHandler) RegenerateClients(c *gin.Context) {
	creds, err := h.auth.RegenerateClientCredentials(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, creds)
}
