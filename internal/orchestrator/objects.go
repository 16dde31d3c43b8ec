package orchestrator

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamspace/sessionctl/internal/naming"
	"github.com/streamspace/sessionctl/internal/profile"
)

func int32Ptr(i int32) *int32 { return &i }

// DeploymentSpec carries everything BuildDeployment needs to construct the
// session's single-container workload.
type DeploymentSpec struct {
	UUID      string
	UserID    string
	Image     string
	Port      int32
	Resources profile.ResourceSpec
	Mounts    []profile.Mount
	ClaimName string
}

// BuildDeployment constructs the Deployment object for a session: single
// container, five fixed sub-path mounts onto one claim, replicas=1.
func BuildDeployment(spec DeploymentSpec) *appsv1.Deployment {
	labels := naming.Labels(spec.UUID, spec.UserID)
	selector := naming.Selector(spec.UUID)
	// the selector must also be present on the pod template and object labels
	for k, v := range selector {
		labels[k] = v
	}

	var volumeMounts []corev1.VolumeMount
	for _, m := range spec.Mounts {
		volumeMounts = append(volumeMounts, corev1.VolumeMount{
			Name:      "session-data",
			MountPath: m.MountPath,
			SubPath:   m.SubPath,
		})
	}

	container := corev1.Container{
		Name:  "session",
		Image: spec.Image,
		Ports: []corev1.ContainerPort{
			{Name: "app", ContainerPort: spec.Port, Protocol: corev1.ProtocolTCP},
		},
		Env: []corev1.EnvVar{
			{Name: "SESSION_UUID", Value: spec.UUID},
			{Name: "USER_ID", Value: spec.UserID},
		},
		Resources:    spec.Resources.ToResourceRequirements(),
		VolumeMounts: volumeMounts,
	}

	podSpec := corev1.PodSpec{
		Containers: []corev1.Container{container},
		Volumes: []corev1.Volume{
			{
				Name: "session-data",
				VolumeSource: corev1.VolumeSource{
					PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
						ClaimName: spec.ClaimName,
					},
				},
			},
		},
	}

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:   naming.Deployment(spec.UUID),
			Labels: labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(1),
			Selector: &metav1.LabelSelector{MatchLabels: selector},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec:       podSpec,
			},
		},
	}
}

// BuildService constructs the internal ClusterIP service fronting the
// session's deployment: port 80 forwarding to the user pod port.
func BuildService(uuid, userID string, podPort int32) *corev1.Service {
	labels := naming.Labels(uuid, userID)
	selector := naming.Selector(uuid)

	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   naming.Service(uuid),
			Labels: labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: selector,
			Ports: []corev1.ServicePort{
				{Name: "app", Port: 80, TargetPort: intOrString(podPort), Protocol: corev1.ProtocolTCP},
			},
			Type: corev1.ServiceTypeClusterIP,
		},
	}
}

// BuildClaim constructs the session's single ReadWriteOnce persistent
// volume claim.
func BuildClaim(uuid, userID, size string) *corev1.PersistentVolumeClaim {
	labels := naming.Labels(uuid, userID)

	return &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{
			Name:   naming.Claim(uuid),
			Labels: labels,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: mustParseQuantity(size),
				},
			},
		},
	}
}

// BuildIngress constructs the session's externally routable ingress: TLS
// via a per-session secret, nginx ingress class, and an annotation
// requesting automatic certificate issuance from a cert-manager cluster
// issuer.
func BuildIngress(uuid, userID, host string, port int32) *networkingv1.Ingress {
	labels := naming.Labels(uuid, userID)
	ingressClassName := "nginx"
	pathTypePrefix := networkingv1.PathTypePrefix

	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:   naming.Ingress(uuid),
			Labels: labels,
			Annotations: map[string]string{
				"cert-manager.io/cluster-issuer": "letsencrypt-prod",
			},
		},
		Spec: networkingv1.IngressSpec{
			IngressClassName: &ingressClassName,
			TLS: []networkingv1.IngressTLS{
				{Hosts: []string{host}, SecretName: naming.TLSSecret(uuid)},
			},
			Rules: []networkingv1.IngressRule{
				{
					Host: host,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathTypePrefix,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: naming.Service(uuid),
											Port: networkingv1.ServiceBackendPort{Number: 80},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
