// Package hook implements the Claude Code hook entry points: session status
// updates, edit guarding, and tool-activity logging. Hook commands must never
// break the editor, so every failure path here degrades to an allow decision.
package hook

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mcpsync/internal/constants"
)

// Config is the hook configuration, read from ~/.claude/hooks.yaml. Every
// field is optional; zero values fall back to the built-in defaults, and a
// missing file is not an error.
type Config struct {
	Endpoint        string            `yaml:"endpoint"`
	TimeoutSeconds  int               `yaml:"timeout_seconds"`
	StatusMap       map[string]string `yaml:"status_map"`
	BlockedPrefixes []string          `yaml:"blocked_prefixes"`
	ActivityDir     string            `yaml:"activity_dir"`
	ActivityLimit   int               `yaml:"activity_limit"`
}

// DefaultConfig returns the built-in hook configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:       constants.DefaultStatusEndpoint,
		TimeoutSeconds: constants.DefaultHookTimeoutSeconds,
		StatusMap: map[string]string{
			"SessionStart":     "connected",
			"UserPromptSubmit": "loading",
			"Stop":             "ready",
		},
		ActivityDir:   os.TempDir(),
		ActivityLimit: constants.DefaultActivityLimit,
	}
}

// DefaultConfigPath returns ~/.claude/hooks.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", constants.HookConfigFile), nil
}

// LoadConfig reads the hook configuration, overlaying the file's fields on
// the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("%s is not valid YAML: %w", path, err)
	}
	if file.Endpoint != "" {
		cfg.Endpoint = file.Endpoint
	}
	if file.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = file.TimeoutSeconds
	}
	if len(file.StatusMap) > 0 {
		cfg.StatusMap = file.StatusMap
	}
	if len(file.BlockedPrefixes) > 0 {
		cfg.BlockedPrefixes = file.BlockedPrefixes
	}
	if file.ActivityDir != "" {
		cfg.ActivityDir = file.ActivityDir
	}
	if file.ActivityLimit > 0 {
		cfg.ActivityLimit = file.ActivityLimit
	}
	return cfg, nil
}

// Save writes the configuration, creating the parent directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode hook config: %w", err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
