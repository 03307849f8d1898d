package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"mcpsync/internal/claudeconf"
	"mcpsync/internal/constants"
	"mcpsync/internal/secrets"
)

// Extractor turns the live configuration into a portable snapshot plus a
// secrets store. The live configuration is never written.
type Extractor struct {
	LiveConfigPath string
	SnapshotPath   string
	SecretsPath    string
	CodeDir        string
	HomeDir        string
}

// ExtractResult summarizes one extraction run.
type ExtractResult struct {
	GlobalServers  int
	Projects       int
	SecretsFound   int
	SecretsChanged int
	SecretNames    []string
}

// Run performs the extraction. Nothing is written until the whole document
// has been transformed, so a parse failure leaves no artifacts behind.
func (e *Extractor) Run() (*ExtractResult, error) {
	cfg, err := claudeconf.Load(e.LiveConfigPath)
	if err != nil {
		return nil, err
	}

	snap := collectSnapshot(cfg)

	found := secrets.Store{}
	snap.Global = scrubValue(snap.Global, found).(map[string]any)
	for path, servers := range snap.Projects {
		snap.Projects[path] = scrubValue(servers, found).(map[string]any)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	text := maskPaths(string(data), e.CodeDir, e.HomeDir)
	text = maskPatternSecrets(text, found)

	// Load the existing store before the first write so a corrupt store
	// aborts the run with no artifacts touched.
	store, err := secrets.LoadStore(e.SecretsPath)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(e.SnapshotPath, []byte(text+"\n"), constants.FilePermissions); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	changed := store.Merge(found)
	if err := store.Save(e.SecretsPath); err != nil {
		return nil, err
	}

	return &ExtractResult{
		GlobalServers:  len(snap.Global),
		Projects:       len(snap.Projects),
		SecretsFound:   len(found),
		SecretsChanged: changed,
		SecretNames:    found.Names(),
	}, nil
}
