// Package registry is the authoritative view of sessions: it owns the
// session hash, its event log, and the TTL refresh that every successful
// mutation performs across a session's store keys.
package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/naming"
	"github.com/streamspace/sessionctl/internal/store"
)

// Session is the durable record backing one session UUID.
type Session struct {
	UUID         string `json:"uuid"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
}

const (
	StatusCreated    = "created"
	StatusRunning    = "running"
	StatusSleeping   = "sleeping"
	StatusTerminated = "terminated"
)

// Event is one append-only entry in a session's event log.
type Event struct {
	Timestamp string                 `json:"timestamp"`
	Type      string                 `json:"type"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

const maxEvents = 100

// Registry wraps the Store Client with the session-record operations the
// Lifecycle Engine and Gateway need.
type Registry struct {
	store      *store.Store
	ttlSeconds int
}

// New builds a Registry over store with the given session TTL.
func New(s *store.Store, ttlSeconds int) *Registry {
	return &Registry{store: s, ttlSeconds: ttlSeconds}
}

// Create writes the initial session hash with status=created and sets TTL
// on session:{uuid} and queue:{uuid}.
func (r *Registry) Create(ctx context.Context, uuid, userID string, now time.Time) (*Session, error) {
	session := &Session{
		UUID:         uuid,
		UserID:       userID,
		Status:       StatusCreated,
		CreatedAt:    now.UTC().Format(time.RFC3339),
		LastActivity: now.UTC().Format(time.RFC3339),
	}

	key := naming.SessionKey(uuid)
	if err := r.store.HashSet(ctx, key, map[string]interface{}{
		"uuid":          session.UUID,
		"user_id":       session.UserID,
		"status":        session.Status,
		"created_at":    session.CreatedAt,
		"last_activity": session.LastActivity,
	}); err != nil {
		return nil, err
	}

	if err := r.store.Expire(ctx, key, r.ttlSeconds); err != nil {
		return nil, err
	}
	if err := r.store.Expire(ctx, naming.QueueKey(uuid), r.ttlSeconds); err != nil {
		return nil, err
	}

	return session, nil
}

// Require reads the session hash or fails with SessionNotFound.
func (r *Registry) Require(ctx context.Context, uuid string) (*Session, error) {
	key := naming.SessionKey(uuid)
	fields, err := r.store.HashGetAll(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.SessionNotFound(uuid)
	}

	return &Session{
		UUID:         fields["uuid"],
		UserID:       fields["user_id"],
		Status:       fields["status"],
		CreatedAt:    fields["created_at"],
		LastActivity: fields["last_activity"],
	}, nil
}

// Touch updates last_activity and, if newStatus is non-empty, status; then
// refreshes TTL on session:{uuid} and queue:{uuid}.
func (r *Registry) Touch(ctx context.Context, uuid string, newStatus string, now time.Time) error {
	key := naming.SessionKey(uuid)
	fields := map[string]interface{}{
		"last_activity": now.UTC().Format(time.RFC3339),
	}
	if newStatus != "" {
		fields["status"] = newStatus
	}

	if err := r.store.HashSet(ctx, key, fields); err != nil {
		return err
	}
	if err := r.store.Expire(ctx, key, r.ttlSeconds); err != nil {
		return err
	}
	if err := r.store.Expire(ctx, naming.QueueKey(uuid), r.ttlSeconds); err != nil {
		return err
	}
	return nil
}

// ExpireChat refreshes TTL on chat:{uuid}. The chat log is trimmed and
// written by the Lifecycle Engine directly, so the Engine calls this after
// each append rather than the Registry owning the write.
func (r *Registry) ExpireChat(ctx context.Context, uuid string) error {
	return r.store.Expire(ctx, naming.ChatKey(uuid), r.ttlSeconds)
}

// RecordEvent prepends a structured event to events:{uuid} and trims it to
// the 100 most recent entries.
func (r *Registry) RecordEvent(ctx context.Context, uuid, eventType string, details map[string]interface{}, now time.Time) error {
	event := Event{
		Timestamp: now.UTC().Format(time.RFC3339),
		Type:      eventType,
		Details:   details,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "marshal event")
	}

	key := naming.EventsKey(uuid)
	if err := r.store.ListPushFront(ctx, key, string(payload)); err != nil {
		return err
	}
	if err := r.store.ListTrim(ctx, key, 0, maxEvents-1); err != nil {
		return err
	}
	return r.store.Expire(ctx, key, r.ttlSeconds)
}

// Destroy removes every store key in a session's namespace: the session
// hash, wake queue, chat log, and event log.
func (r *Registry) Destroy(ctx context.Context, uuid string) error {
	return r.store.Delete(ctx,
		naming.SessionKey(uuid),
		naming.QueueKey(uuid),
		naming.ChatKey(uuid),
		naming.EventsKey(uuid),
	)
}

// List returns every live session record, scanning the session:* keyspace.
func (r *Registry) List(ctx context.Context) ([]*Session, error) {
	keys, err := r.store.ScanKeys(ctx, naming.PrefixSession+":*")
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(keys))
	for _, key := range keys {
		fields, err := r.store.HashGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		sessions = append(sessions, &Session{
			UUID:         fields["uuid"],
			UserID:       fields["user_id"],
			Status:       fields["status"],
			CreatedAt:    fields["created_at"],
			LastActivity: fields["last_activity"],
		})
	}
	return sessions, nil
}

// Metrics summarizes session counts by status for GET /metrics.
type Metrics struct {
	TotalSessions    int
	ActiveSessions   int
	SleepingSessions int
}

// ComputeMetrics tallies session status counts across every live session.
func (r *Registry) ComputeMetrics(ctx context.Context) (*Metrics, error) {
	sessions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	m := &Metrics{TotalSessions: len(sessions)}
	for _, s := range sessions {
		switch s.Status {
		case StatusRunning, StatusCreated:
			m.ActiveSessions++
		case StatusSleeping:
			m.SleepingSessions++
		}
	}
	return m, nil
}
