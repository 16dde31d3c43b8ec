// Package orchestrator wraps the container orchestrator (Kubernetes) behind
// typed create/read/patch/delete for the five object kinds a session owns:
// deployment, service, ingress, persistent volume claim, and batch job.
//
// Unlike the sibling k8s-controller module this codebase was grounded on,
// there is no custom-resource reconciliation loop here: the control plane
// issues direct, synchronous CRUD calls against the built-in typed
// clientset, naming-scoped to one session UUID at a time.
package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client is a typed wrapper over a Kubernetes clientset, scoped to one
// namespace for all session object operations. clientset is held as the
// kubernetes.Interface rather than the concrete *kubernetes.Clientset so
// tests can substitute client-go's fake clientset.
type Client struct {
	clientset kubernetes.Interface
	namespace string
}

// NewWithClientset builds a Client around an already-constructed clientset,
// bypassing credential discovery. Used by tests with the fake clientset.
func NewWithClientset(clientset kubernetes.Interface, namespace string) *Client {
	return &Client{clientset: clientset, namespace: namespace}
}

// New acquires Kubernetes credentials, trying in-cluster discovery first
// and falling back to the caller's local kubeconfig. Failure to acquire
// credentials at startup is the only case treated as fatal; callers should
// propagate a non-nil error up to main and exit.
func New(namespace string) (*Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("acquire kubernetes credentials: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("build kubernetes clientset: %w", err)
	}

	return &Client{clientset: clientset, namespace: namespace}, nil
}

// getConfig attempts in-cluster config first, then falls back to
// $KUBECONFIG or ~/.kube/config.
func getConfig() (*rest.Config, error) {
	config, err := rest.InClusterConfig()
	if err == nil {
		return config, nil
	}

	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("no in-cluster config and no home directory for kubeconfig fallback: %w", err)
		}
		kubeconfig = filepath.Join(home, ".kube", "config")
	}

	return clientcmd.BuildConfigFromFlags("", kubeconfig)
}

// isNotFound reports whether err represents a Kubernetes 404. Centralized
// here since every delete path treats not-found as idempotent success, not
// an error to surface.
func isNotFound(err error) bool {
	return apierrors.IsNotFound(err)
}
