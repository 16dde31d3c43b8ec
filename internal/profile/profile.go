// Package profile unifies what the source repository expressed as three
// near-duplicate session managers (session-manager, client-session-manager,
// and an early version) differing only in name prefix, autoscaler
// presence, mount set, and resource defaults. Those differences are
// modeled here as one struct selected at startup by SESSION_PROFILE,
// rather than as three forked code paths.
package profile

import corev1 "k8s.io/api/core/v1"

// AutoscalerCredentialScope resolves Open Question #2: whether the
// autoscaler trigger credential is scoped per-session or shared across the
// cluster. It is a property of the profile, not a code fork.
type AutoscalerCredentialScope string

const (
	AutoscalerScopeNone          AutoscalerCredentialScope = ""
	AutoscalerScopePerSession    AutoscalerCredentialScope = "per-session"
	AutoscalerScopeClusterShared AutoscalerCredentialScope = "cluster-shared"
)

// Mount describes one sub-path mount of the session's single persistent
// volume claim onto the user pod's container filesystem.
type Mount struct {
	MountPath string
	SubPath   string
}

// ResourceSpec mirrors a Kubernetes container resource list pair.
type ResourceSpec struct {
	RequestsMemory string
	RequestsCPU    string
	LimitsMemory   string
	LimitsCPU      string
}

// ToResourceRequirements converts the pair to the corev1 shape the
// Orchestrator Client writes into a container spec.
func (r ResourceSpec) ToResourceRequirements() corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceMemory: mustParseQuantity(r.RequestsMemory),
			corev1.ResourceCPU:    mustParseQuantity(r.RequestsCPU),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceMemory: mustParseQuantity(r.LimitsMemory),
			corev1.ResourceCPU:    mustParseQuantity(r.LimitsCPU),
		},
	}
}

// Profile parameterizes everything that varied across the source's three
// session-manager forks.
type Profile struct {
	// Prefix is the naming prefix used for the external host, e.g. "user",
	// "client", or "vs-code".
	Prefix string

	// Domain is the base domain appended after the prefix-uuid host part.
	Domain string

	// Mounts is the set of sub-path mounts applied to the session claim.
	Mounts []Mount

	// DefaultResources is the container resource pair used at Create time.
	DefaultResources ResourceSpec

	// ScaleUpResources / ScaleDownResources are used by the Scale operation.
	ScaleUpResources   ResourceSpec
	ScaleDownResources ResourceSpec

	// ClaimSize is the default persistent volume claim size, e.g. "10Gi".
	ClaimSize string

	// UseAutoscaler and AutoscalerCredentialScope resolve Open Question #2.
	UseAutoscaler             bool
	AutoscalerCredentialScope AutoscalerCredentialScope
}

// Default returns the profile matching spec.md's worked examples: prefix
// "user", five fixed sub-path mounts, default resource pair, 10Gi claim, no
// autoscaler wiring (consistent with "a separate autoscaler … is not part
// of this core").
func Default(domain string) Profile {
	return Profile{
		Prefix: "user",
		Domain: domain,
		Mounts: []Mount{
			{MountPath: "/app", SubPath: "app"},
			{MountPath: "/root", SubPath: "root"},
			{MountPath: "/etc/supervisor", SubPath: "etc/supervisor"},
			{MountPath: "/var/log", SubPath: "var/log"},
			{MountPath: "/data/db", SubPath: "data/db"},
		},
		DefaultResources: ResourceSpec{
			RequestsMemory: "256Mi", RequestsCPU: "250m",
			LimitsMemory: "512Mi", LimitsCPU: "500m",
		},
		ScaleUpResources: ResourceSpec{
			RequestsMemory: "1Gi", RequestsCPU: "1000m",
			LimitsMemory: "2Gi", LimitsCPU: "2000m",
		},
		ScaleDownResources: ResourceSpec{
			RequestsMemory: "512Mi", RequestsCPU: "500m",
			LimitsMemory: "1Gi", LimitsCPU: "1000m",
		},
		ClaimSize:                 "10Gi",
		UseAutoscaler:             false,
		AutoscalerCredentialScope: AutoscalerScopeNone,
	}
}

// Client returns the profile matching the client-session-manager variant
// observed in original_source: a distinct host prefix, otherwise identical
// mount and resource shape to Default, with a per-session autoscaler
// credential scope (that source tracked autoscaler state per deployment).
func Client(domain string) Profile {
	p := Default(domain)
	p.Prefix = "client"
	p.UseAutoscaler = true
	p.AutoscalerCredentialScope = AutoscalerScopePerSession
	return p
}

// VSCode returns the profile matching the early "vs-code" prefix variant
// observed in original_source, with a cluster-shared autoscaler credential
// scope (that source read one shared trigger secret across all sessions).
func VSCode(domain string) Profile {
	p := Default(domain)
	p.Prefix = "vs-code"
	p.UseAutoscaler = true
	p.AutoscalerCredentialScope = AutoscalerScopeClusterShared
	return p
}

// ByName resolves a SESSION_PROFILE env var value to a Profile. Unknown
// names fall back to Default, since the env var is optional.
func ByName(name, domain string) Profile {
	switch name {
	case "client":
		return Client(domain)
	case "vs-code":
		return VSCode(domain)
	default:
		return Default(domain)
	}
}
