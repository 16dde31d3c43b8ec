package orchestrator

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// CreateClaim creates a persistent volume claim.
func (c *Client) CreateClaim(ctx context.Context, pvc *corev1.PersistentVolumeClaim) error {
	_, err := c.clientset.CoreV1().PersistentVolumeClaims(c.namespace).Create(ctx, pvc, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "create claim "+pvc.Name)
	}
	return nil
}

// DeleteClaim deletes a persistent volume claim idempotently.
func (c *Client) DeleteClaim(ctx context.Context, name string) error {
	err := c.clientset.CoreV1().PersistentVolumeClaims(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "delete claim "+name)
	}
	return nil
}
