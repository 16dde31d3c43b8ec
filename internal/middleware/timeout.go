package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig holds configuration for request timeouts.
type TimeoutConfig struct {
	Timeout      time.Duration
	ErrorMessage string
}

// DefaultTimeoutConfig returns the default request deadline. Every
// orchestrator and store call, plus the chat path's wake-sleep and backup
// poll, are cancellable by this deadline.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "request timeout",
	}
}

// Timeout attaches a deadline to the request context so that no single
// call stalls a worker indefinitely; in-flight orchestrator calls are
// abandoned but not rolled back when the deadline expires.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		finished := make(chan struct{})
		go func() {
			c.Next()
			close(finished)
		}()

		select {
		case <-finished:
			return
		case <-ctx.Done():
			c.AbortWithStatusJSON(http.StatusRequestTimeout, gin.H{
				"error": config.ErrorMessage,
			})
			return
		}
	}
}
