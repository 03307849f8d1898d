// Package snapshot implements the portable snapshot transformation: secret
// and path abstraction on extract, placeholder resolution and merge on
// restore.
package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"mcpsync/internal/claudeconf"
	"mcpsync/internal/constants"
	"mcpsync/internal/secrets"
)

// Snapshot is the portable form of the MCP server configuration: global
// servers plus per-project servers, with machine paths and secret values
// replaced by symbolic tokens.
type Snapshot struct {
	Global   map[string]any            `json:"global"`
	Projects map[string]map[string]any `json:"projects"`
}

// scrubValue rebuilds a configuration value, moving allow-listed env values
// into found and replacing them with their placeholders. The rebuild is
// copy-on-write all the way down so the live document is never mutated.
func scrubValue(v any, found secrets.Store) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if k == "env" {
				if env, ok := child.(map[string]any); ok {
					out[k] = scrubEnv(env, found)
					continue
				}
			}
			out[k] = scrubValue(child, found)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = scrubValue(child, found)
		}
		return out
	default:
		return v
	}
}

// scrubEnv handles one env mapping. Allow-listed variables with non-empty,
// non-placeholder string values move into found under the variable name.
func scrubEnv(env map[string]any, found secrets.Store) map[string]any {
	out := make(map[string]any, len(env))
	for name, v := range env {
		s, ok := v.(string)
		if ok && secrets.IsSecretEnvVar(name) && s != "" && !secrets.IsPlaceholder(s) {
			found[name] = s
			out[name] = secrets.Placeholder(name)
			continue
		}
		out[name] = scrubValue(v, found)
	}
	return out
}

// maskPaths replaces machine paths in the serialized document with symbolic
// tokens. The code directory is replaced before the home directory: it is a
// subpath of home and would otherwise be partially masked.
func maskPaths(text, codeDir, homeDir string) string {
	if codeDir != "" {
		text = strings.ReplaceAll(text, codeDir, constants.CodeDirToken)
	}
	if homeDir != "" {
		text = strings.ReplaceAll(text, homeDir, constants.HomeToken)
	}
	return text
}

// maskPatternSecrets applies the fixed recognition table to the serialized
// document. Each distinct matched literal is captured under its own symbolic
// name (the bare pattern name, then NAME_2, NAME_3, ... in document order)
// and every occurrence is replaced by that literal's placeholder. Names
// already taken in found — by the env scrub or an earlier pattern — are
// never clobbered: a literal reuses a taken name only when it carries the
// same value, otherwise it moves on to the next free suffix.
func maskPatternSecrets(text string, found secrets.Store) string {
	for _, p := range secrets.Patterns {
		matches := p.Re.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}

		type capture struct {
			literal string
			name    string
		}
		var captures []capture
		seen := map[string]bool{}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			name := allocateName(p.Name, m, found)
			captures = append(captures, capture{literal: m, name: name})
			found[name] = m
		}

		// Longest literal first, in case one capture is a substring of another.
		sort.SliceStable(captures, func(i, j int) bool {
			return len(captures[i].literal) > len(captures[j].literal)
		})
		for _, c := range captures {
			text = strings.ReplaceAll(text, c.literal, secrets.Placeholder(c.name))
		}
	}
	return text
}

// allocateName picks the symbolic name for a captured literal: the base name
// if free, otherwise the first free BASE_n suffix. A name whose stored value
// equals the literal is reused so the same secret never gets two names.
func allocateName(base, literal string, found secrets.Store) string {
	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		if existing, taken := found[name]; !taken || existing == literal {
			return name
		}
	}
}

// collectSnapshot pulls the global and per-project server maps out of the
// live configuration, skipping the synthetic wildcard project and projects
// that define no servers of their own.
func collectSnapshot(cfg claudeconf.Config) Snapshot {
	snap := Snapshot{
		Global:   map[string]any{},
		Projects: map[string]map[string]any{},
	}
	for name, def := range cfg.GlobalServers() {
		snap.Global[name] = def
	}
	for path, settings := range cfg.Projects() {
		if path == constants.GlobalProjectKey {
			continue
		}
		servers := claudeconf.ProjectServers(settings)
		if len(servers) == 0 {
			continue
		}
		project := make(map[string]any, len(servers))
		for name, def := range servers {
			project[name] = def
		}
		snap.Projects[path] = project
	}
	return snap
}
