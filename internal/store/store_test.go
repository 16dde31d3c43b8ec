package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := New(Config{Host: mr.Host(), Port: mr.Port(), DB: 0})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, mr
}

func TestHashSetAndGetAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.HashSet(ctx, "session:abc123", map[string]interface{}{
		"user_id": "alice",
		"status":  "created",
	})
	require.NoError(t, err)

	fields, err := s.HashGetAll(ctx, "session:abc123")
	require.NoError(t, err)
	assert.Equal(t, "alice", fields["user_id"])
	assert.Equal(t, "created", fields["status"])
}

func TestExistsAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "session:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.HashSet(ctx, "session:present", map[string]interface{}{"status": "created"}))
	ok, err = s.Exists(ctx, "session:present")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "session:present"))
	ok, err = s.Exists(ctx, "session:present")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListPushTrimLength(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.ListPushFront(ctx, "events:u1", "event"))
	}
	n, err := s.ListLength(ctx, "events:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	require.NoError(t, s.ListTrim(ctx, "events:u1", 0, 2))
	n, err = s.ListLength(ctx, "events:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestIncrAndExpire(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	val, err := s.Incr(ctx, "rate:1.2.3.4:create")
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)

	val, err = s.Incr(ctx, "rate:1.2.3.4:create")
	require.NoError(t, err)
	assert.Equal(t, int64(2), val)

	require.NoError(t, s.Expire(ctx, "rate:1.2.3.4:create", 60))
	mr.FastForward(61 * time.Second)

	ok, err := s.Exists(ctx, "rate:1.2.3.4:create")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScanKeys(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.HashSet(ctx, "session:a", map[string]interface{}{"status": "created"}))
	require.NoError(t, s.HashSet(ctx, "session:b", map[string]interface{}{"status": "created"}))
	require.NoError(t, s.HashSet(ctx, "queue:a", map[string]interface{}{"x": "1"}))

	keys, err := s.ScanKeys(ctx, "session:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestPing(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
