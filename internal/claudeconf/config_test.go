package claudeconf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claude.json")
	writeFile(t, path, "{not json")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for malformed JSON")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Load() error type = %T, want *ParseError", err)
	}
}

func TestLoadOrEmpty_MissingFile(t *testing.T) {
	cfg, err := LoadOrEmpty(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadOrEmpty() error = %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("LoadOrEmpty() = %v, want empty config", cfg)
	}
}

func TestLoadOrEmpty_MalformedIsStillFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claude.json")
	writeFile(t, path, "][")

	if _, err := LoadOrEmpty(path); err == nil {
		t.Fatal("LoadOrEmpty() expected error for malformed JSON")
	}
}

func TestSave_RoundTripPreservesUnrelatedSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claude.json")
	writeFile(t, path, `{"theme": "dark", "mcpServers": {"fs": {"command": "mcp-fs"}}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.EnsureGlobalServers()["web"] = map[string]any{"command": "mcp-web"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if reloaded["theme"] != "dark" {
		t.Errorf("theme = %v, want dark", reloaded["theme"])
	}
	want := map[string]any{
		"fs":  map[string]any{"command": "mcp-fs"},
		"web": map[string]any{"command": "mcp-web"},
	}
	if diff := cmp.Diff(want, reloaded.GlobalServers()); diff != "" {
		t.Errorf("GlobalServers() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureProjectServers(t *testing.T) {
	cfg := Config{
		"projects": map[string]any{
			"/home/alice/code/proj": map[string]any{
				"allowedTools": []any{"Bash"},
			},
		},
	}

	servers := cfg.EnsureProjectServers("/home/alice/code/proj")
	servers["db"] = map[string]any{"command": "mcp-db"}

	settings := cfg.Projects()["/home/alice/code/proj"].(map[string]any)
	if _, ok := settings["allowedTools"]; !ok {
		t.Error("EnsureProjectServers() dropped existing project settings")
	}
	if got := ProjectServers(settings); got["db"] == nil {
		t.Error("EnsureProjectServers() result not wired into project settings")
	}

	// A brand-new project path is created on demand.
	cfg.EnsureProjectServers("/home/alice/code/new")["fs"] = map[string]any{}
	if ProjectServers(cfg.Projects()["/home/alice/code/new"]) == nil {
		t.Error("EnsureProjectServers() did not create new project entry")
	}
}

func TestProjectServers_NonMapSettings(t *testing.T) {
	if got := ProjectServers("not a map"); got != nil {
		t.Errorf("ProjectServers() = %v, want nil for non-map settings", got)
	}
	if got := ProjectServers(map[string]any{"mcpServers": 42}); got != nil {
		t.Errorf("ProjectServers() = %v, want nil for non-map server list", got)
	}
}
