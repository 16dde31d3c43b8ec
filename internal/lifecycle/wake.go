package lifecycle

import (
	"context"

	"github.com/streamspace/sessionctl/internal/naming"
)

// WakeResult is the response body for a successful Wake.
type WakeResult struct {
	UUID   string `json:"uuid"`
	Action string `json:"action"`
	Status string `json:"status"`
}

// Wake reads the deployment and patches replicas to 1 if currently 0, then
// marks the session running and records session_woken. Actual pod
// readiness is not awaited.
func (e *Engine) Wake(ctx context.Context, uuid string) (*WakeResult, error) {
	if _, err := e.registry.Require(ctx, uuid); err != nil {
		return nil, err
	}

	deploymentName := naming.Deployment(uuid)
	d, err := e.orchestrator.GetDeployment(ctx, deploymentName)
	if err != nil {
		return nil, err
	}
	if d == nil || (d.Spec.Replicas != nil && *d.Spec.Replicas == 0) {
		if err := e.orchestrator.SetDeploymentReplicas(ctx, deploymentName, 1); err != nil {
			return nil, err
		}
	}

	now := e.now()
	if err := e.registry.Touch(ctx, uuid, "running", now); err != nil {
		return nil, err
	}
	if err := e.registry.RecordEvent(ctx, uuid, "session_woken", nil, now); err != nil {
		return nil, err
	}

	return &WakeResult{UUID: uuid, Action: "wake", Status: "waking"}, nil
}
