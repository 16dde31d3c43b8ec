package lifecycle

import (
	"context"

	"github.com/streamspace/sessionctl/internal/naming"
)

// SleepResult is the response body for a successful Sleep.
type SleepResult struct {
	UUID   string `json:"uuid"`
	Action string `json:"action"`
	Status string `json:"status"`
}

// Sleep clears the wake queue, scales the deployment to zero, and marks
// the session sleeping.
func (e *Engine) Sleep(ctx context.Context, uuid string) (*SleepResult, error) {
	if _, err := e.registry.Require(ctx, uuid); err != nil {
		return nil, err
	}

	if err := e.store.Delete(ctx, naming.QueueKey(uuid)); err != nil {
		return nil, err
	}

	if err := e.orchestrator.SetDeploymentReplicas(ctx, naming.Deployment(uuid), 0); err != nil {
		return nil, err
	}

	now := e.now()
	if err := e.registry.Touch(ctx, uuid, "sleeping", now); err != nil {
		return nil, err
	}
	if err := e.registry.RecordEvent(ctx, uuid, "session_sleeping", nil, now); err != nil {
		return nil, err
	}

	return &SleepResult{UUID: uuid, Action: "sleep", Status: "sleeping"}, nil
}
