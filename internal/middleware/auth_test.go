package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

func TestAuthAcceptsXAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/session/create", nil)
	c.Request.Header.Set("X-API-Key", "secret")

	Auth("secret")(c)
	assert.False(t, c.IsAborted())
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/session/create", nil)
	c.Request.Header.Set("Authorization", "Bearer secret")

	Auth("secret")(c)
	assert.False(t, c.IsAborted())
}

func TestAuthRejectsMissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/session/create", nil)

	Auth("secret")(c)
	require.True(t, c.IsAborted())
	appErr, ok := apperrors.As(c.Errors.Last().Err)
	require.True(t, ok)
	assert.Equal(t, apperrors.AuthMissing, appErr.Kind)
}

func TestAuthRejectsWrongKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/session/create", nil)
	c.Request.Header.Set("X-API-Key", "wrong")

	Auth("secret")(c)
	require.True(t, c.IsAborted())
	appErr, ok := apperrors.As(c.Errors.Last().Err)
	require.True(t, ok)
	assert.Equal(t, apperrors.AuthInvalid, appErr.Kind)
}
