package hook

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Endpoint == "" {
		t.Error("default endpoint is empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		t.Errorf("default timeout = %d, want > 0", cfg.TimeoutSeconds)
	}
	if cfg.StatusFor("SessionStart") != "connected" {
		t.Errorf("StatusFor(SessionStart) = %s, want connected", cfg.StatusFor("SessionStart"))
	}
	if cfg.StatusFor("SomethingElse") != "unknown" {
		t.Errorf("StatusFor(SomethingElse) = %s, want unknown", cfg.StatusFor("SomethingElse"))
	}
}

func TestLoadConfig_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	content := `endpoint: http://localhost:9999/status
blocked_prefixes:
  - /srv/prod
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Endpoint != "http://localhost:9999/status" {
		t.Errorf("Endpoint = %s, want file value", cfg.Endpoint)
	}
	if len(cfg.BlockedPrefixes) != 1 || cfg.BlockedPrefixes[0] != "/srv/prod" {
		t.Errorf("BlockedPrefixes = %v, want [/srv/prod]", cfg.BlockedPrefixes)
	}
	// Unset fields keep their defaults.
	if cfg.TimeoutSeconds != DefaultConfig().TimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default", cfg.TimeoutSeconds)
	}
	if cfg.StatusFor("Stop") != "ready" {
		t.Errorf("StatusFor(Stop) = %s, want default mapping", cfg.StatusFor("Stop"))
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "hooks.yaml")
	cfg := DefaultConfig()
	cfg.BlockedPrefixes = []string{"/srv/prod", "/etc"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(loaded.BlockedPrefixes) != 2 {
		t.Errorf("BlockedPrefixes = %v, want 2 entries", loaded.BlockedPrefixes)
	}
	if loaded.Endpoint != cfg.Endpoint {
		t.Errorf("Endpoint = %s, want %s", loaded.Endpoint, cfg.Endpoint)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	if err := os.WriteFile(path, []byte("{{nope"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for malformed YAML")
	}
}
