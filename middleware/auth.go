package middleware

import (
	"net/http"
	"strings"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallerKey is the gin context key holding the authenticated utils.Caller.
const CallerKey = "caller"

// JWTAuthMiddleware identifies the caller from a bearer token. Tokens are
// issued by the identity service; this only checks signature, expiry and
// the sub/role claims.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		caller, err := utils.CallerFromToken(tokenString)
		if err != nil {
			zap.L().Debug("Rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(CallerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the caller set by JWTAuthMiddleware.
func CallerFrom(c *gin.Context) (utils.Caller, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return utils.Caller{}, false
	}
	caller, ok := v.(utils.Caller)
	return caller, ok
}
