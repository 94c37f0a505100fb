package router

import (
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// setupAuthRoutes mounts registration, the token lifecycle and the
// current-user surface. Credential endpoints are rate limited.
func (r *Router) setupAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	limited := auth.Group("")
	limited.Use(middleware.RateLimit(r.opts.AuthRateLimit, r.opts.AuthRateWindow))
	{
		limited.POST("/register", r.auth.Register)
		limited.POST("/token", r.auth.Login)
		limited.POST("/oauth2/token", r.auth.OAuth2Token)
		limited.POST("/refresh", r.auth.Refresh)
	}

	authed := auth.Group("")
	authed.Use(r.authMW.RequireAuth())
	{
		authed.POST("/logout", r.auth.Logout)
		authed.POST("/logout-all", r.auth.LogoutAll)

		authed.GET("/me", r.auth.Me)
		authed.PATCH("/me", r.auth.UpdateMe)

		authed.GET("/me/tokens", r.auth.ListSessions)
		authed.DELETE("/me/tokens/:id", r.auth.RevokeSession)

		authed.GET("/me/oauth2-credentials", r.auth.ListClients)
		authed.POST("/me/oauth2-credentials/regenerate", r.auth.RegenerateClients)
	}
}
