package hook

import (
	"fmt"
	"path/filepath"
	"strings"
)

// editTools are the tool names that modify files on disk.
var editTools = map[string]bool{
	"Edit":         true,
	"Write":        true,
	"MultiEdit":    true,
	"NotebookEdit": true,
}

// Guard blocks file edits whose target falls under a protected path prefix.
type Guard struct {
	BlockedPrefixes []string
}

// NewGuard builds a Guard from the configured prefixes, cleaned. Relative
// prefixes are anchored to the event's cwd at check time.
func NewGuard(cfg Config) *Guard {
	prefixes := make([]string, 0, len(cfg.BlockedPrefixes))
	for _, p := range cfg.BlockedPrefixes {
		if p == "" {
			continue
		}
		prefixes = append(prefixes, filepath.Clean(p))
	}
	return &Guard{BlockedPrefixes: prefixes}
}

// Check returns the decision for a PreToolUse event. Only file-editing tools
// with a target under a blocked prefix are blocked. Relative paths, in the
// event or in the configured prefixes, are resolved against the event's cwd.
func (g *Guard) Check(ev *Event) Decision {
	if !editTools[ev.ToolName] {
		return Allow("not a file edit")
	}
	path := ev.FilePath()
	if path == "" {
		return Allow("no target path")
	}
	cleaned := resolveAgainst(path, ev.CWD)
	for _, prefix := range g.BlockedPrefixes {
		if underPrefix(cleaned, resolveAgainst(prefix, ev.CWD)) {
			return Block(fmt.Sprintf("edits under %s are blocked by hook policy", prefix))
		}
	}
	return Allow("path not protected")
}

// resolveAgainst cleans path and anchors it to base when relative.
func resolveAgainst(path, base string) string {
	if !filepath.IsAbs(path) && base != "" {
		return filepath.Join(base, path)
	}
	return filepath.Clean(path)
}

// underPrefix reports whether path is prefix itself or inside it. A plain
// string prefix check would wrongly match /etc-backup against /etc.
func underPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}
