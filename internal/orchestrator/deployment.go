package orchestrator

import (
	"context"
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/streamspace/sessionctl/internal/apperrors"
)

// CreateDeployment creates the given deployment, returning OrchestratorError
// on any non-idempotent failure.
func (c *Client) CreateDeployment(ctx context.Context, d *appsv1.Deployment) error {
	_, err := c.clientset.AppsV1().Deployments(c.namespace).Create(ctx, d, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "create deployment "+d.Name)
	}
	return nil
}

// GetDeployment reads a deployment by name. Returns (nil, nil) if absent so
// callers (Wake, Chat) can treat a missing deployment as "replicas 0"
// without special-casing a not-found error.
func (c *Client) GetDeployment(ctx context.Context, name string) (*appsv1.Deployment, error) {
	d, err := c.clientset.AppsV1().Deployments(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.OrchestratorError, err, "get deployment "+name)
	}
	return d, nil
}

// SetDeploymentReplicas patches a deployment's replica count.
func (c *Client) SetDeploymentReplicas(ctx context.Context, name string, replicas int32) error {
	patch := []byte(`{"spec":{"replicas":` + strconv.Itoa(int(replicas)) + `}}`)
	_, err := c.clientset.AppsV1().Deployments(c.namespace).Patch(ctx, name, types.MergePatchType, patch, metav1.PatchOptions{})
	if isNotFound(err) {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "scale deployment "+name+": not found")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "scale deployment "+name)
	}
	return nil
}

// SetDeploymentResources patches the container resource requests/limits of
// a deployment's single container, used by Scale.
func (c *Client) SetDeploymentResources(ctx context.Context, name string, requestsMemory, requestsCPU, limitsMemory, limitsCPU string) error {
	patch := []byte(`{"spec":{"template":{"spec":{"containers":[{"name":"session","resources":{` +
		`"requests":{"memory":"` + requestsMemory + `","cpu":"` + requestsCPU + `"},` +
		`"limits":{"memory":"` + limitsMemory + `","cpu":"` + limitsCPU + `"}` +
		`}}]}}}}`)
	_, err := c.clientset.AppsV1().Deployments(c.namespace).Patch(ctx, name, types.StrategicMergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "resize deployment "+name)
	}
	return nil
}

// DeleteDeployment deletes a deployment with the given grace period.
// Not-found is treated as idempotent success.
func (c *Client) DeleteDeployment(ctx context.Context, name string, gracePeriodSeconds int64) error {
	err := c.clientset.AppsV1().Deployments(c.namespace).Delete(ctx, name, metav1.DeleteOptions{
		GracePeriodSeconds: &gracePeriodSeconds,
	})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.OrchestratorError, err, "delete deployment "+name)
	}
	return nil
}
