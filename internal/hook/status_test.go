package hook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifier_PostsStatusUpdate(t *testing.T) {
	var received statusUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = server.URL
	n := NewNotifier(cfg)

	ev := &Event{SessionID: "abc", HookType: "UserPromptSubmit", Timestamp: "2026-08-23T10:00:00Z"}
	if err := n.Notify(ev, "loading"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if received.ClaudeSessionID != "abc" {
		t.Errorf("claudeSessionId = %q, want abc", received.ClaudeSessionID)
	}
	if received.Status != "loading" {
		t.Errorf("status = %q, want loading", received.Status)
	}
	if received.HookType != "UserPromptSubmit" {
		t.Errorf("hookType = %q, want UserPromptSubmit", received.HookType)
	}
}

func TestNotifier_NonOKIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = server.URL
	if err := NewNotifier(cfg).Notify(&Event{SessionID: "abc"}, "ready"); err == nil {
		t.Error("Notify() expected error for non-200 response")
	}
}

func TestNotifier_UnreachableEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://127.0.0.1:1/nope"
	cfg.TimeoutSeconds = 1
	if err := NewNotifier(cfg).Notify(&Event{SessionID: "abc"}, "ready"); err == nil {
		t.Error("Notify() expected error for unreachable endpoint")
	}
}
