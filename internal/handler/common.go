package handler

import (
	"net/http"
	"strconv"

	"github.com/fastcrm/fastcrm/internal/constants"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/fastcrm/fastcrm/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP response. Status
// mapping lives in the errors package; this is the only place it is
// applied.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(c.Request.Context(), "request failed").
			String("path", c.FullPath()).
			Err(err).
			Log()
	}
	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

// respondBindingError turns binding failures into a 400 with per-field
// messages.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(
		http.StatusBadRequest,
		constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatErrors(err)),
	)
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(
			http.StatusBadRequest,
			constants.BuildErrorResponse(constants.MsgBadRequest, []string{name + " must be a positive integer"}),
		)
		return 0, false
	}
	return uint(id), true
}
