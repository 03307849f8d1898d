package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// statusUpdate is the payload the status endpoint expects.
type statusUpdate struct {
	ClaudeSessionID string `json:"claudeSessionId"`
	Status          string `json:"status"`
	HookType        string `json:"hookType"`
	Timestamp       string `json:"timestamp"`
}

// Notifier delivers session status updates to the local backend.
type Notifier struct {
	Endpoint string
	Client   *http.Client
}

// NewNotifier builds a Notifier with the configured endpoint and timeout.
func NewNotifier(cfg Config) *Notifier {
	return &Notifier{
		Endpoint: cfg.Endpoint,
		Client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Notify posts one status update. The caller decides whether a failure
// matters; for hooks it never does.
func (n *Notifier) Notify(ev *Event, status string) error {
	payload := statusUpdate{
		ClaudeSessionID: ev.SessionID,
		Status:          status,
		HookType:        ev.HookType,
		Timestamp:       ev.Timestamp,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	log.WithFields(log.Fields{
		"endpoint": n.Endpoint,
		"session":  ev.SessionID,
		"status":   status,
	}).Debug("sending session status update")

	resp, err := n.Client.Post(n.Endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("status update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status update rejected: %s", resp.Status)
	}
	return nil
}

// StatusFor maps a hook type to its session status, or "unknown".
func (c Config) StatusFor(hookType string) string {
	if status, ok := c.StatusMap[hookType]; ok {
		return status
	}
	return "unknown"
}
