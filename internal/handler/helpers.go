package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/middleware"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/response"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

// handleError maps the service sentinels onto HTTP statuses. Anything not in
// the taxonomy is a 500 and gets logged with the request context.
func handleError(c *gin.Context, err error) {
	switch {
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not_found", "resource not found")
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, "conflict", "resource already exists")
	case appErr.IsAIUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "ai provider not configured")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "bad_request", "invalid request")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "access denied")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, http.StatusTooManyRequests, "too_many_requests", "slow down")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, http.StatusBadRequest, "bad_request", "malformed request body")
		return false
	}
	return true
}
