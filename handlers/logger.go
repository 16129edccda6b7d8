package handlers

import (
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLogger is the logger tagged with the request id, or the global
// logger for requests that skipped middleware.RequestLogger.
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(middleware.LoggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
