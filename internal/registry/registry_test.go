package registry

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := store.New(store.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return New(s, 86400), mr
}

func TestCreateAndRequire(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	created, err := r.Create(ctx, "a1b2c3d4", "alice", now)
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, created.Status)

	got, err := r.Require(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, StatusCreated, got.Status)
}

func TestRequireMissingReturnsSessionNotFound(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Require(context.Background(), "doesnotexist")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.SessionNotFound, appErr.Kind)
}

func TestTouchRefreshesTTL(t *testing.T) {
	r, mr := newTestRegistry(t)
	ctx := context.Background()
	now := time.Now()

	_, err := r.Create(ctx, "a1b2c3d4", "alice", now)
	require.NoError(t, err)

	mr.FastForward(200 * time.Second)
	require.NoError(t, r.Touch(ctx, "a1b2c3d4", StatusRunning, now.Add(200*time.Second)))

	ttl := mr.TTL("session:a1b2c3d4")
	assert.Equal(t, 86400*time.Second, ttl)

	got, err := r.Require(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)
}

func TestEventCap(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	now := time.Now()

	_, err := r.Create(ctx, "a1b2c3d4", "alice", now)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.NoError(t, r.RecordEvent(ctx, "a1b2c3d4", "session_woken", nil, now))
	}

	n, err := r.store.ListLength(ctx, "events:a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)
}

func TestDestroyRemovesAllNamespaceKeys(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	now := time.Now()

	_, err := r.Create(ctx, "a1b2c3d4", "alice", now)
	require.NoError(t, err)
	require.NoError(t, r.RecordEvent(ctx, "a1b2c3d4", "session_created", nil, now))

	require.NoError(t, r.Destroy(ctx, "a1b2c3d4"))

	_, err = r.Require(ctx, "a1b2c3d4")
	require.Error(t, err)

	n, err := r.store.ListLength(ctx, "events:a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
