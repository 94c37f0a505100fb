package middleware

import (
	"github.com/fastcrm/fastcrm/internal/constants"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContext seeds every request with a request id, client ip and
// user agent so downstream logging carries them automatically. An
// incoming X-Request-ID is honored, otherwise one is generated.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(constants.HeaderXRequestID, requestID)

		ctx := ctxutil.NewRequestContext(
			c.Request.Context(),
			requestID,
			c.ClientIP(),
			c.GetHeader(constants.HeaderUserAgent),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
