package lifecycle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/streamspace/sessionctl/internal/apperrors"
	"github.com/streamspace/sessionctl/internal/naming"
)

// ChatResult is the response body for a Chat call: either the forwarded
// pod response (HTTP 200) or a queued acknowledgement (HTTP 202).
type ChatResult struct {
	Status      string      `json:"status"`
	PodResponse interface{} `json:"pod_response,omitempty"`
	Queued      bool        `json:"-"`
}

// Chat pushes a "chat" marker onto the wake queue, wakes the pod on demand if
// it is scaled to zero, records the chat and event logs, waits a fixed
// short interval for the pod to become available, and attempts a
// synchronous forward with a 5-second timeout. If the pod does not accept
// the forward, the call falls back to "queued".
func (e *Engine) Chat(ctx context.Context, uuid, message string) (*ChatResult, error) {
	if message == "" {
		return nil, apperrors.Validation("message is required")
	}
	if _, err := e.registry.Require(ctx, uuid); err != nil {
		return nil, err
	}

	if err := e.store.ListPushFront(ctx, naming.QueueKey(uuid), "chat"); err != nil {
		return nil, err
	}

	deploymentName := naming.Deployment(uuid)
	d, err := e.orchestrator.GetDeployment(ctx, deploymentName)
	if err != nil {
		return nil, err
	}
	if d == nil || (d.Spec.Replicas != nil && *d.Spec.Replicas == 0) {
		if err := e.orchestrator.SetDeploymentReplicas(ctx, deploymentName, 1); err != nil {
			return nil, err
		}
	}

	if err := e.store.ListPushFront(ctx, naming.ChatKey(uuid), chatRecordJSON(message, e.now())); err != nil {
		return nil, err
	}
	if err := e.store.ListTrim(ctx, naming.ChatKey(uuid), 0, 999); err != nil {
		return nil, err
	}
	if err := e.registry.ExpireChat(ctx, uuid); err != nil {
		return nil, err
	}

	now := e.now()
	if err := e.registry.Touch(ctx, uuid, "", now); err != nil {
		return nil, err
	}
	if err := e.registry.RecordEvent(ctx, uuid, "chat_received", map[string]interface{}{
		"message_length": len(message),
	}, now); err != nil {
		return nil, err
	}

	select {
	case <-time.After(e.wakeDelay):
	case <-ctx.Done():
		return &ChatResult{Status: "queued", Queued: true}, nil
	}

	d, err = e.orchestrator.GetDeployment(ctx, deploymentName)
	if err != nil || d == nil || d.Status.ReadyReplicas < 1 {
		return &ChatResult{Status: "queued", Queued: true}, nil
	}

	podResponse, ok := e.forwardChat(ctx, uuid, message)
	if !ok {
		return &ChatResult{Status: "queued", Queued: true}, nil
	}

	return &ChatResult{Status: "processed", PodResponse: podResponse}, nil
}

// forwardChat attempts the synchronous POST to the session pod's internal
// service. The second return value reports whether the forward should be
// treated as successful (a 2xx response).
func (e *Engine) forwardChat(ctx context.Context, uuid, message string) (interface{}, bool) {
	url := fmt.Sprintf("http://%s.%s.svc.cluster.local:80/chat", naming.Service(uuid), e.namespace)

	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}

	var decoded interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return string(respBody), true
	}
	return decoded, true
}

func chatRecordJSON(message string, now time.Time) string {
	record := map[string]string{
		"timestamp": now.UTC().Format(time.RFC3339),
		"type":      "user_message",
		"content":   message,
	}
	payload, _ := json.Marshal(record)
	return string(payload)
}
