// Package naming maps a session UUID to the canonical names and labels of
// every orchestrator object it owns. Every function here is pure: given the
// same UUID and profile, it returns the same names, so that deletion can
// recompute owned object names without reading orchestrator state first.
package naming

import "strings"

// Store key prefixes, per the key layout.
const (
	PrefixSession = "session"
	PrefixQueue   = "queue"
	PrefixChat    = "chat"
	PrefixEvents  = "events"
	PrefixRate    = "rate"
)

// Deployment returns the deployment name owning U.
func Deployment(uuid string) string { return "user-" + uuid }

// Service returns the internal service name owning U.
func Service(uuid string) string { return "user-" + uuid }

// Ingress returns the ingress name owning U.
func Ingress(uuid string) string { return "user-" + uuid }

// Claim returns the persistent volume claim name owning U.
func Claim(uuid string) string { return "pvc-" + uuid }

// TLSSecret returns the TLS secret name owning U.
func TLSSecret(uuid string) string { return "tls-" + uuid }

// BackupJob returns the name of the best-effort backup job for U.
func BackupJob(uuid string) string { return "backup-" + uuid }

// Host returns the external host for U under prefix and domain, e.g.
// "user-abc12345.preview.example".
func Host(prefix, uuid, domain string) string {
	return prefix + "-" + uuid + "." + domain
}

// SessionKey returns the store key of the session hash for U.
func SessionKey(uuid string) string { return PrefixSession + ":" + uuid }

// QueueKey returns the store key of the wake queue list for U.
func QueueKey(uuid string) string { return PrefixQueue + ":" + uuid }

// ChatKey returns the store key of the chat log list for U.
func ChatKey(uuid string) string { return PrefixChat + ":" + uuid }

// EventsKey returns the store key of the event log list for U.
func EventsKey(uuid string) string { return PrefixEvents + ":" + uuid }

// RateKey returns the store key of the rate-limit counter for a caller IP
// and endpoint name.
func RateKey(ip, endpoint string) string {
	return PrefixRate + ":" + ip + ":" + endpoint
}

// Labels builds the label set applied to every orchestrator object owned by
// a session: {session-uuid: U, user-id: sanitize(userID)}.
func Labels(uuid, userID string) map[string]string {
	return map[string]string{
		"session-uuid": uuid,
		"user-id":      Sanitize(userID),
	}
}

// Sanitize replaces characters not valid in a Kubernetes label value
// (@, /, :) with "-".
func Sanitize(s string) string {
	replacer := strings.NewReplacer("@", "-", "/", "-", ":", "-")
	return replacer.Replace(s)
}

// Selector returns the pod label selector a session's deployment and
// service both use: app=user-{U}.
func Selector(uuid string) map[string]string {
	return map[string]string{"app": Deployment(uuid)}
}
