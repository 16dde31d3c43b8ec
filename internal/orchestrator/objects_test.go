package orchestrator

import (
	"testing"

	"github.com/streamspace/sessionctl/internal/profile"
)

func TestBuildDeploymentNaming(t *testing.T) {
	p := profile.Default("preview.example")
	d := BuildDeployment(DeploymentSpec{
		UUID:      "a1b2c3d4",
		UserID:    "alice@example",
		Image:     "example/user-pod:latest",
		Port:      8080,
		Resources: p.DefaultResources,
		Mounts:    p.Mounts,
		ClaimName: "pvc-a1b2c3d4",
	})

	if d.Name != "user-a1b2c3d4" {
		t.Fatalf("unexpected deployment name: %s", d.Name)
	}
	if *d.Spec.Replicas != 1 {
		t.Fatalf("expected replicas=1 on create, got %d", *d.Spec.Replicas)
	}
	if len(d.Spec.Template.Spec.Containers[0].VolumeMounts) != 5 {
		t.Fatalf("expected 5 sub-path mounts, got %d", len(d.Spec.Template.Spec.Containers[0].VolumeMounts))
	}
	if d.Labels["user-id"] != "alice-example" {
		t.Fatalf("expected sanitized user-id label, got %s", d.Labels["user-id"])
	}
}

func TestBuildIngressHasTLSAndAnnotation(t *testing.T) {
	ing := BuildIngress("a1b2c3d4", "alice", "user-a1b2c3d4.preview.example", 8080)
	if ing.Spec.TLS[0].SecretName != "tls-a1b2c3d4" {
		t.Fatalf("unexpected tls secret: %s", ing.Spec.TLS[0].SecretName)
	}
	if ing.Annotations["cert-manager.io/cluster-issuer"] == "" {
		t.Fatal("expected a cluster-issuer annotation requesting automatic certificate issuance")
	}
	if *ing.Spec.IngressClassName != "nginx" {
		t.Fatalf("expected nginx ingress class, got %s", *ing.Spec.IngressClassName)
	}
}

func TestBuildClaimReadWriteOnce(t *testing.T) {
	pvc := BuildClaim("a1b2c3d4", "alice", "10Gi")
	if pvc.Spec.AccessModes[0] != "ReadWriteOnce" {
		t.Fatalf("expected ReadWriteOnce, got %v", pvc.Spec.AccessModes)
	}
}
