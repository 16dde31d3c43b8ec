package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/streamspace/sessionctl/internal/lifecycle"
	"github.com/streamspace/sessionctl/internal/orchestrator"
	"github.com/streamspace/sessionctl/internal/profile"
	"github.com/streamspace/sessionctl/internal/registry"
	"github.com/streamspace/sessionctl/internal/store"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := store.New(store.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	reg := registry.New(s, 86400)
	orch := orchestrator.NewWithClientset(fake.NewSimpleClientset(), "default")
	p := profile.Default("preview.example")
	engine := lifecycle.New(s, orch, reg, p, lifecycle.Options{
		Namespace: "default",
		PodImage:  "example/user-pod:latest",
		PodPort:   8080,
	})

	gw := New(engine, reg, s)
	return Router(gw, testAPIKey)
}

func doRequest(r http.Handler, method, path, apiKey string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsUnauthenticated(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsIsUnauthenticated(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateRequiresAuth(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodPost, "/session/create", "", map[string]string{"user_id": "alice"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateWithWrongKeyIsForbidden(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodPost, "/session/create", "wrong", map[string]string{"user_id": "alice"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFullSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/session/create", testAPIKey, map[string]string{"user_id": "alice@example"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	uuid, ok := created["uuid"].(string)
	require.True(t, ok)
	assert.Len(t, uuid, 8)
	assert.Equal(t, "https://user-"+uuid+".preview.example", created["workspace_url"])

	w = doRequest(r, http.MethodGet, "/session/"+uuid+"/status", testAPIKey, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/session/"+uuid+"/sleep", testAPIKey, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/session/"+uuid+"/chat", testAPIKey, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = doRequest(r, http.MethodPost, "/session/"+uuid+"/scale", testAPIKey, map[string]string{"scale": "up"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/sessions", testAPIKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, float64(1), list["total"])

	w = doRequest(r, http.MethodDelete, "/session/"+uuid, testAPIKey, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/session/"+uuid+"/status", testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a terminated session is reported SessionNotFound, 400 off the delete path")
}

func TestCreateWithoutUserIDIsBadRequest(t *testing.T) {
	r := newTestRouter(t)
	w := doRequest(r, http.MethodPost, "/session/create", testAPIKey, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
