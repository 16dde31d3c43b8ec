// Package store wraps the external key/value store (Redis) behind the
// exact operation set the Session Registry and rate limiter need: hash,
// list, counter, and TTL primitives, plus a keyspace scan.
//
// Connection pool settings, retry backoff, and timeouts follow the same
// values used elsewhere in this codebase for Redis clients. Connection
// health is checked on a background ticker; callers never block on it.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/logger"
)

// Config holds store connection configuration.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Store is a typed wrapper over a Redis client.
type Store struct {
	client *redis.Client
	cancel context.CancelFunc
}

// New creates a Store, verifying connectivity with a 5-second timeout.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:        25,
		MinIdleConns:    5,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, err, "initial connect")
	}

	healthCtx, cancel := context.WithCancel(context.Background())
	s := &Store{client: client, cancel: cancel}
	go s.healthCheckLoop(healthCtx)

	return s, nil
}

// healthCheckLoop pings the store every 30s and logs a warning on failure.
// It never tears down the client — go-redis reconnects transparently.
func (s *Store) healthCheckLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := s.client.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				logger.Store().Warn().Err(err).Msg("store health check failed")
			}
		}
	}
}

// Close stops the health-check loop and closes the underlying connection.
func (s *Store) Close() error {
	s.cancel()
	return s.client.Close()
}

// Ping verifies connectivity on demand.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "ping")
	}
	return nil
}

// HashSet writes every field of fields into the hash at key.
func (s *Store) HashSet(ctx context.Context, key string, fields map[string]interface{}) error {
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "hash_set "+key)
	}
	return nil
}

// HashGetAll returns every field of the hash at key. An absent key returns
// an empty map, not an error — callers treat an empty map as absence.
func (s *Store) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, err, "hash_get_all "+key)
	}
	return result, nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(apperrors.StoreUnavailable, err, "exists "+key)
	}
	return count > 0, nil
}

// Delete removes any number of keys. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "delete")
	}
	return nil
}

// ListPushFront prepends value to the list at key.
func (s *Store) ListPushFront(ctx context.Context, key string, value interface{}) error {
	if err := s.client.LPush(ctx, key, value).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "list_push_front "+key)
	}
	return nil
}

// ListTrim trims the list at key to the inclusive index range [lo, hi].
func (s *Store) ListTrim(ctx context.Context, key string, lo, hi int64) error {
	if err := s.client.LTrim(ctx, key, lo, hi).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "list_trim "+key)
	}
	return nil
}

// ListLength returns the length of the list at key.
func (s *Store) ListLength(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.StoreUnavailable, err, "list_length "+key)
	}
	return n, nil
}

// ListRange returns elements [start, stop] of the list at key.
func (s *Store) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, err, "list_range "+key)
	}
	return vals, nil
}

// Incr atomically increments the counter at key and returns the new value.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.StoreUnavailable, err, "incr "+key)
	}
	return val, nil
}

// Expire sets key's TTL to the given number of seconds.
func (s *Store) Expire(ctx context.Context, key string, seconds int) error {
	if err := s.client.Expire(ctx, key, time.Duration(seconds)*time.Second).Err(); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, err, "expire "+key)
	}
	return nil
}

// ScanKeys returns every key matching pattern, iterating with SCAN rather
// than KEYS so it never blocks the store under a large keyspace.
func (s *Store) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, err, "scan_keys "+pattern)
	}
	return keys, nil
}

// TTL returns the remaining TTL for key; the rate limiter uses it to report
// retry_after.
func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.StoreUnavailable, err, "ttl "+key)
	}
	return ttl, nil
}
