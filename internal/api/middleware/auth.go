package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AuthHeader = "Peleman-Auth"

// Auth rejects every request whose shared-secret header does not match the
// configured key, before any business logic runs.
func Auth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AuthHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "You are not authorized to use this resource",
			})
			return
		}
		c.Next()
	}
}
