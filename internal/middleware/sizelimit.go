package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxRequestBodySize is the maximum allowed request body size for the
// session control plane's small JSON bodies.
const MaxRequestBodySize int64 = 1 * 1024 * 1024 // 1 MB

// RequestSizeLimiter rejects oversized request bodies before they reach a
// handler, and wraps the body in a LimitReader so a lying Content-Length
// header can't be used to bypass the check.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body exceeds maximum allowed size",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
