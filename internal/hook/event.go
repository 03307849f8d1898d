package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mcpsync/internal/constants"
)

// Event is a hook invocation as delivered by Claude Code on stdin. Field
// names vary between hook types and versions, so decoding is lenient.
type Event struct {
	SessionID    string         `json:"session_id"`
	SessionIDAlt string         `json:"sessionId"`
	HookType     string         `json:"hook_event_name"`
	ToolName     string         `json:"tool_name"`
	ToolInput    map[string]any `json:"tool_input"`
	ToolResponse any            `json:"tool_response"`
	CWD          string         `json:"cwd"`
	Timestamp    string         `json:"timestamp"`
}

// DecodeEvent reads one hook event. The CLAUDE_SESSION_ID environment
// variable wins over the event payload, matching the original hook scripts.
func DecodeEvent(r io.Reader) (*Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode hook event: %w", err)
	}
	if env := os.Getenv(constants.SessionIDEnvVar); env != "" {
		ev.SessionID = env
	} else if ev.SessionID == "" {
		ev.SessionID = ev.SessionIDAlt
	}
	return &ev, nil
}

// FilePath returns the tool input's target path for file-editing tools.
func (e *Event) FilePath() string {
	if e.ToolInput == nil {
		return ""
	}
	for _, key := range []string{"file_path", "notebook_path"} {
		if s, ok := e.ToolInput[key].(string); ok {
			return s
		}
	}
	return ""
}

// Decision is the verdict a hook reports back to Claude Code on stdout.
type Decision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// Allow builds an allow decision.
func Allow(reason string) Decision { return Decision{Decision: "allow", Reason: reason} }

// Block builds a block decision.
func Block(reason string) Decision { return Decision{Decision: "block", Reason: reason} }

// Emit writes the decision as a single JSON line.
func (d Decision) Emit(w io.Writer) error {
	return json.NewEncoder(w).Encode(d)
}
