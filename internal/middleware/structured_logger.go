package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/logger"
)

// StructuredLoggerConfig controls which paths StructuredLogger skips.
type StructuredLoggerConfig struct {
	SkipPaths []string
}

// DefaultStructuredLoggerConfig skips /health and /metrics, which are
// polled far more often than they're worth logging.
func DefaultStructuredLoggerConfig() StructuredLoggerConfig {
	return StructuredLoggerConfig{SkipPaths: []string{"/health", "/metrics"}}
}

// StructuredLogger logs one zerolog event per request: method, path,
// status, duration, client IP, and request ID. 5xx logs at Error, 4xx at
// Warn, everything else at Info.
func StructuredLogger(config StructuredLoggerConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}
	log := logger.HTTP()

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP())

		if raw := c.Request.URL.RawQuery; raw != "" {
			event.Str("query", raw)
		}
		if len(c.Errors) > 0 {
			event.Str("errors", c.Errors.String())
		}
		event.Msg("request")
	}
}
