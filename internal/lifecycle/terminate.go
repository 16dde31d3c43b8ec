package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/streamspace/sessionctl/internal/logger"
	"github.com/streamspace/sessionctl/internal/naming"
	"github.com/streamspace/sessionctl/internal/orchestrator"
)

// TerminateResult is the response body for a successful Terminate.
type TerminateResult struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

// Terminate runs a best-effort, bounded backup job, then deletes every
// owned orchestrator object in order and idempotently, then destroys the
// session record. Backup failure never blocks termination.
func (e *Engine) Terminate(ctx context.Context, uuid string) (*TerminateResult, error) {
	if _, err := e.registry.Require(ctx, uuid); err != nil {
		return nil, err
	}

	e.runBackup(ctx, uuid)

	if err := e.orchestrator.DeleteDeployment(ctx, naming.Deployment(uuid), 30); err != nil {
		return nil, err
	}
	if err := e.orchestrator.DeleteService(ctx, naming.Service(uuid)); err != nil {
		return nil, err
	}
	if err := e.orchestrator.DeleteIngress(ctx, naming.Ingress(uuid)); err != nil {
		return nil, err
	}
	if err := e.orchestrator.DeleteClaim(ctx, naming.Claim(uuid)); err != nil {
		return nil, err
	}

	if err := e.registry.RecordEvent(ctx, uuid, "session_terminated", nil, e.now()); err != nil {
		logger.Lifecycle().Error().Err(err).Str("uuid", uuid).Msg("failed to record session_terminated event")
	}

	if err := e.registry.Destroy(ctx, uuid); err != nil {
		return nil, err
	}

	return &TerminateResult{UUID: uuid, Status: "terminated"}, nil
}

// runBackup creates the best-effort backup job and polls it up to
// backupPollAttempts * backupPollInterval before giving up. It never
// returns an error: a failed or timed-out backup is logged, not raised.
func (e *Engine) runBackup(ctx context.Context, uuid string) {
	if e.backupClaim == "" {
		return
	}

	log := logger.Lifecycle()
	job := orchestrator.BuildBackupJob(uuid, naming.Claim(uuid), e.backupClaim, e.backupImage, e.now())

	if err := e.orchestrator.CreateJob(ctx, job); err != nil {
		log.Warn().Err(err).Str("uuid", uuid).Msg("backup job creation failed, proceeding with termination")
		return
	}

	jobName := fmt.Sprintf("backup-%s", uuid)
	for attempt := 0; attempt < e.backupPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			log.Warn().Str("uuid", uuid).Msg("backup poll cancelled by request deadline")
			return
		case <-time.After(e.backupPollInterval):
		}

		got, err := e.orchestrator.GetJob(ctx, jobName)
		if err != nil {
			log.Warn().Err(err).Str("uuid", uuid).Msg("backup job poll failed")
			return
		}
		if orchestrator.JobFinished(got) {
			return
		}
	}

	log.Warn().Str("uuid", uuid).Msg("backup job did not finish within the poll window, proceeding with termination")
}
