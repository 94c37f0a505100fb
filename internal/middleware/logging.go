package middleware

import (
	"net/http"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.InfoWithContext(c.Request.Context(), "http request").
			String("method", c.Request.Method).
			String("path", path).
			Int("status", c.Writer.Status()).
			Duration(time.Since(start)).
			Int("size", c.Writer.Size()).
			Log()
	}
}

// Recovery converts panics into a 500 response and logs the stack.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered)
		c.AbortWithStatusJSON(
			http.StatusInternalServerError,
			constants.BuildErrorResponse(constants.MsgInternalError, nil),
		)
	})
}
