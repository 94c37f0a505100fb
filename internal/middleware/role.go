package middleware

import (
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/gin-gonic/gin"
)

// RequireRole enforces a minimum role. Must run after RequireAuth.
func RequireRole(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentUserRole(c)
		if !role.Valid() {
			abortWithError(c, apperrors.ErrUnauthenticated)
			return
		}
		if !role.AtLeast(min) {
			abortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
