package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/naming"
	"github.com/streamspace/sessionctl/internal/store"
)

// RateLimitConfig bounds one endpoint to N requests per window seconds,
// counted per caller IP.
type RateLimitConfig struct {
	Endpoint string
	Limit    int64
	Window   int
}

// RateLimit enforces config against a Redis counter keyed by caller IP and
// endpoint. The counter is created with Expire on its first increment each
// window, so a caller under the limit never pays for a key that outlives it.
func RateLimit(s *store.Store, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := naming.RateKey(c.ClientIP(), config.Endpoint)

		count, err := s.Incr(c.Request.Context(), key)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if count == 1 {
			if err := s.Expire(c.Request.Context(), key, config.Window); err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
		}

		if count > config.Limit {
			retryAfter := config.Window
			if ttl, err := s.TTL(c.Request.Context(), key); err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}
			_ = c.Error(apperrors.RateLimited(retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
