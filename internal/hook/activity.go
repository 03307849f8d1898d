package hook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Record is one tool-activity entry in a session's activity file.
type Record struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Tool      string `json:"tool"`
	Phase     string `json:"phase"`
	Message   string `json:"message"`
}

// ActivityLog appends tool activity to a per-session JSON file, keeping only
// the most recent entries.
type ActivityLog struct {
	Dir   string
	Limit int
}

// NewActivityLog builds an ActivityLog from the hook configuration.
func NewActivityLog(cfg Config) *ActivityLog {
	return &ActivityLog{Dir: cfg.ActivityDir, Limit: cfg.ActivityLimit}
}

// filePath returns the activity file for a session.
func (l *ActivityLog) filePath(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return filepath.Join(l.Dir, fmt.Sprintf("claude-session-%s-activity.json", sessionID))
}

// Append records one activity entry and trims the file to the limit. A
// corrupt activity file is discarded and started over; activity history is
// advisory, not state.
func (l *ActivityLog) Append(ev *Event, phase string) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		Tool:      ev.ToolName,
		Phase:     phase,
		Message:   FormatActivity(ev, phase),
	}

	path := l.filePath(ev.SessionID)
	var records []Record
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &records); err != nil {
			log.WithField("path", path).Warn("discarding corrupt activity file")
			records = nil
		}
	}

	records = append(records, rec)
	if l.Limit > 0 && len(records) > l.Limit {
		records = records[len(records)-l.Limit:]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return rec, fmt.Errorf("failed to encode activity: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return rec, fmt.Errorf("failed to write activity file: %w", err)
	}
	return rec, nil
}

// FormatActivity renders a short human-readable line for a tool event.
func FormatActivity(ev *Event, phase string) string {
	input := ev.ToolInput
	str := func(key string) string {
		if input == nil {
			return ""
		}
		s, _ := input[key].(string)
		return s
	}
	base := func(key string) string {
		if p := str(key); p != "" {
			return filepath.Base(p)
		}
		return "file"
	}
	starting := phase == "start"

	switch ev.ToolName {
	case "Bash":
		if starting {
			if desc := str("description"); desc != "" {
				return "Running: " + desc
			}
			cmd := str("command")
			if len(cmd) > 80 {
				cmd = cmd[:80] + "..."
			}
			return "$ " + cmd
		}
		if resp, ok := ev.ToolResponse.(string); ok {
			if lines := strings.Count(strings.TrimSpace(resp), "\n") + 1; lines > 3 {
				return fmt.Sprintf("Completed (%d lines output)", lines)
			}
		}
		return "Done"
	case "Read":
		if starting {
			return "Reading " + base("file_path")
		}
		return "Read " + base("file_path")
	case "Write":
		if starting {
			return "Writing " + base("file_path")
		}
		return "Wrote " + base("file_path")
	case "Edit", "MultiEdit":
		if starting {
			return "Editing " + base("file_path")
		}
		return "Edited " + base("file_path")
	case "Glob":
		pattern := str("pattern")
		if pattern == "" {
			pattern = "*"
		}
		if starting {
			return "Finding files: " + pattern
		}
		return "Found files"
	case "Grep":
		if starting {
			return "Searching for: " + str("pattern")
		}
		return "Search complete"
	default:
		if starting {
			return "Using " + ev.ToolName
		}
		return ev.ToolName + " complete"
	}
}
