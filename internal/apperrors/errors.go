// Package apperrors provides the closed set of error kinds the control
// plane raises, and their mapping to HTTP status codes.
//
// Error Structure:
//   - Kind: one of a fixed set of tagged variants (AuthMissing, AuthInvalid, …)
//   - Message: human-readable description, safe to return to the caller
//   - Details: optional internal context, logged but never returned for
//     Internal-kind errors
//   - RetryAfter: set only on RateLimited, seconds until the window resets
//
// Usage patterns:
//
//	return apperrors.SessionNotFound(uuid)
//	return apperrors.Wrap(apperrors.OrchestratorError, err, "create deployment")
//	return apperrors.RateLimited(60)
package apperrors

import "net/http"

// Kind is a closed tagged variant identifying the error taxonomy entry.
type Kind string

const (
	AuthMissing       Kind = "AuthMissing"
	AuthInvalid       Kind = "AuthInvalid"
	ValidationError   Kind = "ValidationError"
	SessionNotFound   Kind = "SessionNotFound"
	RateLimited       Kind = "RateLimited"
	OrchestratorError Kind = "OrchestratorError"
	StoreUnavailable  Kind = "StoreUnavailable"
	Internal          Kind = "Internal"
)

// AppError is the error type returned by every component above the
// Store Client and Orchestrator Client. It carries enough to map to an
// HTTP response without the Gateway needing to know the originating layer.
type AppError struct {
	Kind       Kind
	Message    string
	Details    string
	RetryAfter int // seconds; only meaningful for RateLimited
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// New builds an AppError of the given kind with a caller-facing message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap builds an AppError of the given kind with that kind's generic
// message, carrying the underlying error as Details, which is never
// surfaced in the HTTP body.
func Wrap(kind Kind, err error, context string) *AppError {
	msg := genericMessage(kind)
	details := context
	if err != nil {
		if details != "" {
			details = details + ": " + err.Error()
		} else {
			details = err.Error()
		}
	}
	return &AppError{Kind: kind, Message: msg, Details: details}
}

func genericMessage(kind Kind) string {
	switch kind {
	case OrchestratorError:
		return "orchestrator operation failed"
	case StoreUnavailable:
		return "store is unavailable"
	default:
		return "internal error"
	}
}

// SessionNotFound builds the kind used when a required session record is
// absent. The HTTP status it maps to depends on the call site (404 on
// delete, 400 elsewhere) — see StatusCode.
func SessionNotFound(uuid string) *AppError {
	return &AppError{Kind: SessionNotFound, Message: "session not found: " + uuid}
}

// RateLimited builds the 429 error carrying the retry-after window.
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Kind:       RateLimited,
		Message:    "rate limit exceeded",
		RetryAfter: retryAfterSeconds,
	}
}

// Validation builds a ValidationError with a caller-facing message.
func Validation(message string) *AppError {
	return &AppError{Kind: ValidationError, Message: message}
}

// AuthMissingErr builds the 401 "no credential header" error.
func AuthMissingErr() *AppError {
	return &AppError{Kind: AuthMissing, Message: "API key required"}
}

// AuthInvalidErr builds the 403 "credential mismatch" error.
func AuthInvalidErr() *AppError {
	return &AppError{Kind: AuthInvalid, Message: "invalid API key"}
}

// StatusCode maps an error kind to its HTTP status. onDelete distinguishes
// the one context-sensitive kind, SessionNotFound, which is 404 on the
// delete path and 400 everywhere else per the error taxonomy.
func StatusCode(kind Kind, onDelete bool) int {
	switch kind {
	case AuthMissing:
		return http.StatusUnauthorized
	case AuthInvalid:
		return http.StatusForbidden
	case ValidationError:
		return http.StatusBadRequest
	case SessionNotFound:
		if onDelete {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case RateLimited:
		return http.StatusTooManyRequests
	case OrchestratorError:
		return http.StatusInternalServerError
	case StoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body shape returned for every error.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// ToResponse renders the caller-facing body. Internal-kind errors never
// include Details; those are logged by the middleware, not returned.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:      e.Message,
		RetryAfter: e.RetryAfter,
	}
}

// As reports whether err is an *AppError and returns it.
func As(err error) (*AppError, bool) {
	ae, ok := err.(*AppError)
	return ae, ok
}
