package orchestrator

import (
	"context"
	"testing"

	"k8s.io/client-go/kubernetes/fake"

	"github.com/streamspace/sessionctl/internal/profile"
)

func newTestClient() *Client {
	return NewWithClientset(fake.NewSimpleClientset(), "default")
}

func TestCreateAndGetDeployment(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	p := profile.Default("preview.example")

	d := BuildDeployment(DeploymentSpec{
		UUID: "a1b2c3d4", UserID: "alice", Image: "img", Port: 8080,
		Resources: p.DefaultResources, Mounts: p.Mounts, ClaimName: "pvc-a1b2c3d4",
	})

	if err := c.CreateDeployment(ctx, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetDeployment(ctx, "user-a1b2c3d4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected deployment to exist")
	}
}

func TestGetMissingDeploymentReturnsNilNotError(t *testing.T) {
	c := newTestClient()
	got, err := c.GetDeployment(context.Background(), "user-doesnotexist")
	if err != nil {
		t.Fatalf("expected no error for missing deployment, got %v", err)
	}
	if got != nil {
		t.Fatal("expected nil deployment")
	}
}

func TestDeleteMissingDeploymentIsIdempotent(t *testing.T) {
	c := newTestClient()
	if err := c.DeleteDeployment(context.Background(), "user-doesnotexist", 30); err != nil {
		t.Fatalf("expected idempotent success deleting a missing deployment, got %v", err)
	}
}

func TestSetDeploymentReplicas(t *testing.T) {
	c := newTestClient()
	ctx := context.Background()
	p := profile.Default("preview.example")

	d := BuildDeployment(DeploymentSpec{
		UUID: "a1b2c3d4", UserID: "alice", Image: "img", Port: 8080,
		Resources: p.DefaultResources, Mounts: p.Mounts, ClaimName: "pvc-a1b2c3d4",
	})
	if err := c.CreateDeployment(ctx, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.SetDeploymentReplicas(ctx, "user-a1b2c3d4", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := c.GetDeployment(ctx, "user-a1b2c3d4")
	if *got.Spec.Replicas != 0 {
		t.Fatalf("expected replicas=0 after scale-down, got %d", *got.Spec.Replicas)
	}
}
