package lifecycle

import (
	"context"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/naming"
)

// ScaleResult is the response body for a successful Scale.
type ScaleResult struct {
	UUID   string `json:"uuid"`
	Action string `json:"action"`
	Status string `json:"status"`
}

// Scale rewrites the deployment's container resources to the profile's
// scale-up or scale-down pair. Any value other than "up"/"down" fails with
// ValidationError.
func (e *Engine) Scale(ctx context.Context, uuid, direction string) (*ScaleResult, error) {
	if _, err := e.registry.Require(ctx, uuid); err != nil {
		return nil, err
	}

	var resources = e.profile.ScaleUpResources
	var action = "scale_up"
	switch direction {
	case "up":
		resources = e.profile.ScaleUpResources
		action = "scale_up"
	case "down":
		resources = e.profile.ScaleDownResources
		action = "scale_down"
	default:
		return nil, apperrors.Validation("scale must be \"up\" or \"down\"")
	}

	if err := e.orchestrator.SetDeploymentResources(ctx,
		naming.Deployment(uuid),
		resources.RequestsMemory, resources.RequestsCPU,
		resources.LimitsMemory, resources.LimitsCPU,
	); err != nil {
		return nil, err
	}

	now := e.now()
	eventType := "scaled_up"
	if direction == "down" {
		eventType = "scaled_down"
	}
	if err := e.registry.Touch(ctx, uuid, "", now); err != nil {
		return nil, err
	}
	if err := e.registry.RecordEvent(ctx, uuid, eventType, nil, now); err != nil {
		return nil, err
	}

	return &ScaleResult{UUID: uuid, Action: action, Status: "success"}, nil
}
