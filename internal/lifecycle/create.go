package lifecycle

import (
	"context"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/logger"
	"github.com/streamspace/sessionctl/internal/naming"
	"github.com/streamspace/sessionctl/internal/orchestrator"
)

// CreateResult is the response body for a successful Create.
type CreateResult struct {
	UUID         string `json:"uuid"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	WorkspaceURL string `json:"workspace_url"`
}

// Create provisions the claim, deployment, service, and ingress for a new
// session, in that order, then commits the session record. If any
// orchestrator step fails, every already-created object is deleted in
// reverse order and no session record is written.
func (e *Engine) Create(ctx context.Context, userID string) (*CreateResult, error) {
	if userID == "" {
		return nil, apperrors.Validation("user_id is required")
	}

	uuid := newUUID()
	log := logger.Lifecycle()

	claimName := naming.Claim(uuid)
	deploymentName := naming.Deployment(uuid)
	serviceName := naming.Service(uuid)
	ingressName := naming.Ingress(uuid)
	host := naming.Host(e.profile.Prefix, uuid, e.profile.Domain)

	var created []func(context.Context) error

	compensate := func(failErr error) error {
		for i := len(created) - 1; i >= 0; i-- {
			if err := created[i](ctx); err != nil {
				log.Error().Err(err).Str("uuid", uuid).Msg("compensation step failed")
			}
		}
		return failErr
	}

	claim := orchestrator.BuildClaim(uuid, userID, e.profile.ClaimSize)
	if err := e.orchestrator.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}
	created = append(created, func(ctx context.Context) error {
		return e.orchestrator.DeleteClaim(ctx, claimName)
	})

	deployment := orchestrator.BuildDeployment(orchestrator.DeploymentSpec{
		UUID:      uuid,
		UserID:    userID,
		Image:     e.podImage,
		Port:      e.podPort,
		Resources: e.profile.DefaultResources,
		Mounts:    e.profile.Mounts,
		ClaimName: claimName,
	})
	if err := e.orchestrator.CreateDeployment(ctx, deployment); err != nil {
		return nil, compensate(err)
	}
	created = append(created, func(ctx context.Context) error {
		return e.orchestrator.DeleteDeployment(ctx, deploymentName, 30)
	})

	service := orchestrator.BuildService(uuid, userID, e.podPort)
	if err := e.orchestrator.CreateService(ctx, service); err != nil {
		return nil, compensate(err)
	}
	created = append(created, func(ctx context.Context) error {
		return e.orchestrator.DeleteService(ctx, serviceName)
	})

	ingress := orchestrator.BuildIngress(uuid, userID, host, e.podPort)
	if err := e.orchestrator.CreateIngress(ctx, ingress); err != nil {
		return nil, compensate(err)
	}
	created = append(created, func(ctx context.Context) error {
		return e.orchestrator.DeleteIngress(ctx, ingressName)
	})

	now := e.now()
	session, err := e.registry.Create(ctx, uuid, userID, now)
	if err != nil {
		return nil, compensate(err)
	}

	if err := e.registry.RecordEvent(ctx, uuid, "session_created", map[string]interface{}{
		"user_id": userID,
	}, now); err != nil {
		log.Error().Err(err).Str("uuid", uuid).Msg("failed to record session_created event")
	}

	return &CreateResult{
		UUID:         session.UUID,
		UserID:       session.UserID,
		Status:       session.Status,
		CreatedAt:    session.CreatedAt,
		WorkspaceURL: "https://" + host,
	}, nil
}
