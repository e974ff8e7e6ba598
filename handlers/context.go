package handlers

import (
	"rentwatch/middleware"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger if one was set, else the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// actorID is the authenticated caller's uid, or "" when the route is unauthenticated.
func actorID(c *gin.Context) string {
	if caller, ok := middleware.CallerFrom(c); ok {
		return caller.UID
	}
	return ""
}

// bindJSON decodes the request body, reporting malformed input as invalid-argument.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.WriteError(c, utils.InvalidArgument("Invalid request body"))
		return false
	}
	return true
}
