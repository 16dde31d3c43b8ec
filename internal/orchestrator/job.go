package orchestrator

import (
	"context"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/naming"
)

// BuildBackupJob constructs the short-lived batch job that zips a
// session's claim onto the shared backup claim. It mounts the session
// claim read-only at /app and the shared backup claim read-write at
// /backup, and is configured to auto-delete 300s after completion.
func BuildBackupJob(uuid, sessionClaim, backupClaim, image string, now time.Time) *batchv1.Job {
	ttl := int32(300)
	backoffLimit := int32(0)
	filename := fmt.Sprintf("app-%s-%s.zip", uuid, now.UTC().Format("20060102-150405"))

	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:   naming.BackupJob(uuid),
			Labels: map[string]string{"session-uuid": uuid, "job-role": "backup"},
		},
		Spec: batchv1.JobSpec{
			TTLSecondsAfterFinished: &ttl,
			BackoffLimit:            &backoffLimit,
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{
						{
							Name:    "backup",
							Image:   image,
							Command: []string{"sh", "-c", "zip -r /backup/$(BACKUP_FILENAME) /app"},
							Env: []corev1.EnvVar{
								{Name: "BACKUP_FILENAME", Value: filename},
							},
							VolumeMounts: []corev1.VolumeMount{
								{Name: "session-data", MountPath: "/app", ReadOnly: true},
								{Name: "backup-data", MountPath: "/backup"},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: "session-data",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: sessionClaim, ReadOnly: true,
								},
							},
						},
						{
							Name: "backup-data",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: backupClaim,
								},
							},
						},
					},
				},
			},
		},
	}
}

// CreateJob creates a batch job.
func (c *Client) CreateJob(ctx context.Context, job *batchv1.Job) error {
	_, err := c.clientset.BatchV1().Jobs(c.namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "create job "+job.Name)
	}
	return nil
}

// GetJob reads a job's current status. Returns (nil, nil) if absent.
func (c *Client) GetJob(ctx context.Context, name string) (*batchv1.Job, error) {
	job, err := c.clientset.BatchV1().Jobs(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.OrchestratorError, err, "get job "+name)
	}
	return job, nil
}

// JobFinished reports whether a job has either succeeded or failed.
func JobFinished(job *batchv1.Job) bool {
	if job == nil {
		return false
	}
	return job.Status.Succeeded > 0 || job.Status.Failed > 0
}

// DeleteJob deletes a job idempotently.
func (c *Client) DeleteJob(ctx context.Context, name string) error {
	err := c.clientset.BatchV1().Jobs(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "delete job "+name)
	}
	return nil
}
