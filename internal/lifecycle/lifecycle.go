// Package lifecycle implements the session state machine: create, wake,
// sleep, scale, chat, and terminate, each translating into a coordinated
// sequence of Orchestrator Client and Registry calls with best-effort
// compensation on partial failure.
package lifecycle

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/streamspace/sessionctl/internal/orchestrator"
	"github.com/streamspace/sessionctl/internal/profile"
	"github.com/streamspace/sessionctl/internal/registry"
	"github.com/streamspace/sessionctl/internal/store"
)

// Engine is the Lifecycle Engine: the state machine and compensation logic
// around one session's orchestrator objects and store record.
type Engine struct {
	store        *store.Store
	orchestrator *orchestrator.Client
	registry     *registry.Registry
	profile      profile.Profile
	namespace    string
	podImage     string
	podPort      int32
	backupClaim  string
	backupImage  string

	// httpClient is used for the chat forwarding fast path; overridable in
	// tests.
	httpClient *http.Client

	// now is overridable in tests so TTL/timestamp assertions are exact.
	now func() time.Time

	// wakeDelay is the fixed short wait before the chat path's forward
	// attempt; overridable in tests so they don't sleep 500ms for real.
	wakeDelay time.Duration

	// backupPollInterval/backupPollAttempts bound Terminate's backup job
	// poll at 12 * 5s = 60s by default; overridable in tests.
	backupPollInterval time.Duration
	backupPollAttempts int
}

// Options configures an Engine beyond its required collaborators.
type Options struct {
	Namespace   string
	PodImage    string
	PodPort     int32
	BackupClaim string
	BackupImage string
}

// New builds a Lifecycle Engine.
func New(s *store.Store, orch *orchestrator.Client, reg *registry.Registry, p profile.Profile, opts Options) *Engine {
	return &Engine{
		store:               s,
		orchestrator:        orch,
		registry:            reg,
		profile:             p,
		namespace:           opts.Namespace,
		podImage:            opts.PodImage,
		podPort:             opts.PodPort,
		backupClaim:         opts.BackupClaim,
		backupImage:         opts.BackupImage,
		httpClient:          &http.Client{Timeout: 5 * time.Second},
		now:                 time.Now,
		wakeDelay:           500 * time.Millisecond,
		backupPollInterval:  5 * time.Second,
		backupPollAttempts:  12,
	}
}

// newUUID allocates an 8-character lowercase hex session identifier,
// truncated from a random UUID.
func newUUID() string {
	return uuid.New().String()[:8]
}
