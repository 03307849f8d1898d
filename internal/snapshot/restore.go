package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"mcpsync/internal/claudeconf"
	"mcpsync/internal/constants"
	"mcpsync/internal/secrets"
)

// Restorer reconstructs live configuration entries from a portable snapshot.
type Restorer struct {
	LiveConfigPath string
	SnapshotPath   string
	SecretsPath    string
	CodeDir        string
	HomeDir        string
}

// RestoreResult summarizes one restoration run.
type RestoreResult struct {
	GlobalServers    int
	ProjectsRestored int
	ProjectsSkipped  int
	SkippedPaths     []string
	Unresolved       []string
	SecretsLoaded    bool
}

// Run performs the restoration. A missing snapshot or unreadable live
// configuration aborts with no write; a missing secrets store only means
// placeholders survive unresolved.
func (r *Restorer) Run() (*RestoreResult, error) {
	raw, err := os.ReadFile(r.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	// Mirror extraction ordering: CODE_DIR first, then HOME.
	text := strings.ReplaceAll(string(raw), constants.CodeDirToken, r.CodeDir)
	text = strings.ReplaceAll(text, constants.HomeToken, r.HomeDir)

	var snap Snapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		return nil, &claudeconf.ParseError{Path: r.SnapshotPath, Err: err}
	}

	result := &RestoreResult{}

	store := secrets.Store{}
	if _, err := os.Stat(r.SecretsPath); err == nil {
		store, err = secrets.LoadStore(r.SecretsPath)
		if err != nil {
			return nil, err
		}
		result.SecretsLoaded = true
	}

	unresolved := map[string]bool{}
	snap.Global = resolveValue(snap.Global, store, unresolved).(map[string]any)
	for path, servers := range snap.Projects {
		snap.Projects[path] = resolveValue(servers, store, unresolved).(map[string]any)
	}
	for name := range unresolved {
		result.Unresolved = append(result.Unresolved, name)
	}
	sort.Strings(result.Unresolved)

	live, err := claudeconf.LoadOrEmpty(r.LiveConfigPath)
	if err != nil {
		return nil, err
	}

	if len(snap.Global) > 0 {
		global := live.EnsureGlobalServers()
		for name, def := range snap.Global {
			global[name] = def
		}
		result.GlobalServers = len(snap.Global)
	}

	for path, servers := range snap.Projects {
		if !dirExists(path) {
			result.ProjectsSkipped++
			result.SkippedPaths = append(result.SkippedPaths, path)
			continue
		}
		target := live.EnsureProjectServers(path)
		for name, def := range servers {
			target[name] = def
		}
		result.ProjectsRestored++
	}
	sort.Strings(result.SkippedPaths)

	if err := live.Save(r.LiveConfigPath); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveValue rebuilds a value with every ${NAME} reference replaced by its
// stored secret. Unresolved references stay verbatim and are recorded.
func resolveValue(v any, store secrets.Store, unresolved map[string]bool) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = resolveValue(child, store, unresolved)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = resolveValue(child, store, unresolved)
		}
		return out
	case string:
		return secrets.PlaceholderRef.ReplaceAllStringFunc(val, func(token string) string {
			name := token[2 : len(token)-1]
			if value, ok := store[name]; ok {
				return value
			}
			unresolved[name] = true
			return token
		})
	default:
		return v
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
