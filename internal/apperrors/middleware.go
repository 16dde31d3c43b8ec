package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// onDeletePaths marks the route patterns where SessionNotFound maps to 404
// instead of the default 400, per the error taxonomy's one context-sensitive
// mapping.
var onDeletePaths = map[string]bool{
	"DELETE /session/:uuid": true,
}

// ErrorHandler drains gin's error collection after the handler has run and
// renders the last attached error as the response body. Handlers attach
// errors with c.Error(err) and return without writing a body themselves.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := As(err)
		if !ok {
			appErr = &AppError{Kind: Internal, Message: "internal error", Details: err.Error()}
		}

		onDelete := onDeletePaths[c.Request.Method+" "+c.FullPath()]
		status := StatusCode(appErr.Kind, onDelete)

		logEvent := log.Error()
		if appErr.Kind == Internal || appErr.Kind == OrchestratorError || appErr.Kind == StoreUnavailable {
			logEvent = log.Error().Str("details", appErr.Details)
		}
		logEvent.Str("kind", string(appErr.Kind)).Int("status", status).Msg(appErr.Message)

		c.AbortWithStatusJSON(status, appErr.ToResponse())
	}
}

// Recovery converts a panic into an Internal AppError instead of letting
// gin's default recovery write a bare 500 with no JSON body.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal error",
				})
			}
		}()
		c.Next()
	}
}

// Abort attaches err to the gin context's error collection and stops the
// chain; ErrorHandler renders the response once middleware unwinds.
func Abort(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}
