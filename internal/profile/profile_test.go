package profile

import "testing"

func TestDefaultProfile(t *testing.T) {
	p := Default("preview.example")
	if p.Prefix != "user" {
		t.Fatalf("unexpected prefix: %s", p.Prefix)
	}
	if len(p.Mounts) != 5 {
		t.Fatalf("expected 5 mounts, got %d", len(p.Mounts))
	}
	if p.UseAutoscaler {
		t.Fatalf("default profile should not use an autoscaler")
	}
}

func TestByNameFallsBackToDefault(t *testing.T) {
	p := ByName("unknown", "preview.example")
	if p.Prefix != "user" {
		t.Fatalf("unknown profile name should fall back to default, got prefix %s", p.Prefix)
	}
}

func TestClientProfile(t *testing.T) {
	p := ByName("client", "preview.example")
	if p.Prefix != "client" {
		t.Fatalf("unexpected prefix: %s", p.Prefix)
	}
	if p.AutoscalerCredentialScope != AutoscalerScopePerSession {
		t.Fatalf("expected per-session scope, got %s", p.AutoscalerCredentialScope)
	}
}

func TestResourceRequirementsConversion(t *testing.T) {
	p := Default("preview.example")
	rr := p.DefaultResources.ToResourceRequirements()
	if rr.Requests.Cpu().String() != "250m" {
		t.Fatalf("unexpected cpu request: %s", rr.Requests.Cpu().String())
	}
}
