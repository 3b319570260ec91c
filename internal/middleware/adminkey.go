package middleware

import (
	"crypto/subtle"
	"net/http"

	"vsol_site/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminKey guards administrative listing endpoints. When no key is
// configured the endpoints stay closed rather than open.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		if key == "" {
			log.Info("admin endpoint hit but no admin key is configured")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			return
		}

		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
