// Package claudeconf reads and writes the live Claude Code configuration
// (~/.claude.json). The file is owned by Claude Code and carries settings far
// beyond MCP servers, so it is handled as an untyped document: we only ever
// touch the mcpServers and projects subtrees and round-trip everything else
// untouched.
package claudeconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mcpsync/internal/constants"
)

// ServersKey and ProjectsKey are the two subtrees this tool manages.
const (
	ServersKey  = "mcpServers"
	ProjectsKey = "projects"
)

// Config is the parsed live configuration document.
type Config map[string]any

// ParseError reports a configuration file that exists but is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns the live configuration path under the home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.LiveConfigFile), nil
}

// Load reads and parses the live configuration. A missing file is an error;
// use LoadOrEmpty when absence is acceptable.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if cfg == nil {
		cfg = Config{}
	}
	return cfg, nil
}

// LoadOrEmpty reads the live configuration, returning an empty document when
// the file does not exist. Malformed JSON is still a ParseError: merging into
// a config we cannot parse would clobber the user's settings.
func LoadOrEmpty(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back via a temp file and rename, so a failed
// write never leaves a truncated live config behind.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".claude-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// GlobalServers returns the top-level server map, or nil if absent.
func (c Config) GlobalServers() map[string]any {
	return asMap(c[ServersKey])
}

// EnsureGlobalServers returns the top-level server map, creating it if needed.
func (c Config) EnsureGlobalServers() map[string]any {
	if m := asMap(c[ServersKey]); m != nil {
		return m
	}
	m := map[string]any{}
	c[ServersKey] = m
	return m
}

// Projects returns the project-path → settings map, or nil if absent.
func (c Config) Projects() map[string]any {
	return asMap(c[ProjectsKey])
}

// EnsureProjects returns the project map, creating it if needed.
func (c Config) EnsureProjects() map[string]any {
	if m := asMap(c[ProjectsKey]); m != nil {
		return m
	}
	m := map[string]any{}
	c[ProjectsKey] = m
	return m
}

// EnsureProjectServers returns the server map for one project, creating the
// project settings and the server map as needed. Other settings the project
// already carries are left alone.
func (c Config) EnsureProjectServers(path string) map[string]any {
	projects := c.EnsureProjects()
	settings := asMap(projects[path])
	if settings == nil {
		settings = map[string]any{}
		projects[path] = settings
	}
	servers := asMap(settings[ServersKey])
	if servers == nil {
		servers = map[string]any{}
		settings[ServersKey] = servers
	}
	return servers
}

// ProjectServers extracts the server map from one project's settings, or nil
// if the settings carry none.
func ProjectServers(settings any) map[string]any {
	m := asMap(settings)
	if m == nil {
		return nil
	}
	return asMap(m[ServersKey])
}

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}
