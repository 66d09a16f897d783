package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin route tree with a shared secret, accepted from
// the X-Admin-Secret header or, for link-style access, the admin_secret query
// parameter. The header wins when both are present.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Secret")
		if provided == "" {
			provided = c.Query("admin_secret")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin secret"})
			c.Abort()
			return
		}

		c.Next()
	}
}
