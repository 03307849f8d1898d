// Package machine resolves per-machine settings, currently the code
// directory under which project paths live on this host.
package machine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcpsync/internal/constants"
)

// Config holds machine-specific settings. It is created lazily the first
// time either tool needs a code directory and persisted for later runs.
type Config struct {
	CodeDir string `json:"codeDir"`
}

// ConfigurationError reports that no code directory could be determined.
type ConfigurationError struct {
	HomeDir    string
	Candidates []string
	ConfigPath string
}

func (e *ConfigurationError) Error() string {
	probed := make([]string, len(e.Candidates))
	for i, name := range e.Candidates {
		probed[i] = filepath.Join(e.HomeDir, name)
	}
	return fmt.Sprintf("could not determine code directory; probed:\n  - %s\nSet it manually with --code-dir or by writing {\"codeDir\": \"...\"} to %s",
		strings.Join(probed, "\n  - "), e.ConfigPath)
}

// Resolver applies the code directory resolution priority rules.
type Resolver struct {
	homeDir    string
	configPath string
}

// NewResolver creates a Resolver persisting to the given machine config path.
func NewResolver(configPath string) (*Resolver, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Resolver{homeDir: homeDir, configPath: configPath}, nil
}

// HomeDir returns the resolved home directory.
func (r *Resolver) HomeDir() string { return r.homeDir }

// ResolveCodeDir determines the code directory.
// Priority:
//  1. Explicit value (flag) - persisted for future runs
//  2. Persisted machine config
//  3. Probe of the fixed candidate list under the home directory,
//     first existing directory wins and is persisted
//
// Returns a ConfigurationError when nothing resolves.
func (r *Resolver) ResolveCodeDir(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("invalid code directory %q: %w", explicit, err)
		}
		if err := r.persist(abs); err != nil {
			return "", err
		}
		return abs, nil
	}

	if cfg, err := r.load(); err != nil {
		return "", err
	} else if cfg != nil && cfg.CodeDir != "" {
		return cfg.CodeDir, nil
	}

	for _, name := range constants.CodeDirCandidates {
		candidate := filepath.Join(r.homeDir, name)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			if err := r.persist(candidate); err != nil {
				return "", err
			}
			return candidate, nil
		}
	}

	return "", &ConfigurationError{
		HomeDir:    r.homeDir,
		Candidates: constants.CodeDirCandidates,
		ConfigPath: r.configPath,
	}
}

// load reads the persisted machine config, returning nil when absent.
func (r *Resolver) load() (*Config, error) {
	data, err := os.ReadFile(r.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.configPath, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", r.configPath, err)
	}
	return &cfg, nil
}

func (r *Resolver) persist(codeDir string) error {
	data, err := json.MarshalIndent(Config{CodeDir: codeDir}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode machine config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(r.configPath, data, constants.FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.configPath, err)
	}
	return nil
}
