package lifecycle

import (
	"context"
	"time"

	"github.com/streamspace/sessionctl/internal/naming"
)

// StatusResult is the response body for GetStatus: it blends the stored
// session record with a live read of the deployment's replica count,
// matching the original implementation's habit of trusting the orchestrator
// as the source of truth for replicas while trusting the store for
// everything else.
type StatusResult struct {
	UUID        string      `json:"uuid"`
	Session     interface{} `json:"session"`
	QueueLength int64       `json:"queue_length"`
	Replicas    int32       `json:"replicas"`
	Timestamp   string      `json:"timestamp"`
}

// GetStatus reads the session record from the Registry and the live
// replica count from the orchestrator, falling back to 0 replicas if the
// deployment is absent.
func (e *Engine) GetStatus(ctx context.Context, uuid string) (*StatusResult, error) {
	session, err := e.registry.Require(ctx, uuid)
	if err != nil {
		return nil, err
	}

	var replicas int32
	d, err := e.orchestrator.GetDeployment(ctx, naming.Deployment(uuid))
	if err != nil {
		return nil, err
	}
	if d != nil && d.Spec.Replicas != nil {
		replicas = *d.Spec.Replicas
	}

	queueLen, err := e.store.ListLength(ctx, naming.QueueKey(uuid))
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		UUID:        uuid,
		Session:     session,
		QueueLength: queueLen,
		Replicas:    replicas,
		Timestamp:   e.now().UTC().Format(time.RFC3339),
	}, nil
}
