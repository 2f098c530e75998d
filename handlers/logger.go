package handlers

import (
	"tailortalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger set by middleware, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	return utils.ContextLogger(c)
}
