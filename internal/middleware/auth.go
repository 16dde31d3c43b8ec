package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// Auth validates a static API key against every request, accepted either
// as X-API-Key or as "Authorization: Bearer <key>". Comparison is constant
// time so response latency can't leak how much of the key matched.
func Auth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if provided == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				provided = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if provided == "" {
			_ = c.Error(apperrors.AuthMissingErr())
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			_ = c.Error(apperrors.AuthInvalidErr())
			c.Abort()
			return
		}

		c.Next()
	}
}
