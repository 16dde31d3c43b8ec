package orchestrator

import (
	"context"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// CreateIngress creates an ingress.
func (c *Client) CreateIngress(ctx context.Context, ing *networkingv1.Ingress) error {
	_, err := c.clientset.NetworkingV1().Ingresses(c.namespace).Create(ctx, ing, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "create ingress "+ing.Name)
	}
	return nil
}

// DeleteIngress deletes an ingress idempotently.
func (c *Client) DeleteIngress(ctx context.Context, name string) error {
	err := c.clientset.NetworkingV1().Ingresses(c.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "delete ingress "+name)
	}
	return nil
}
