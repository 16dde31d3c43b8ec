package orchestrator

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// CreateService creates a ClusterIP service.
func (c *Client) CreateService(ctx context.Context, s *corev1.Service) error {
	_, err := c.clientset.CoreV1().Services(c.namespace).Create(ctx, s, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "create service "+s.Name)
	}
	return nil
}

// DeleteService deletes a service idempotently.
func (c *Client) DeleteService(ctx context.Context, name string) error {
	err := c.clientset.CoreV1().Services(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "delete service "+name)
	}
	return nil
}
