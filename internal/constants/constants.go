package constants

import "os"

// Live configuration constants
const (
	// LiveConfigFile is the Claude Code configuration filename under $HOME.
	LiveConfigFile = ".claude.json"

	// GlobalProjectKey is the synthetic wildcard project entry that mirrors
	// the global server list. It is never copied into snapshots.
	GlobalProjectKey = "*"
)

// Artifact filenames, resolved against the invocation directory unless
// overridden by flags.
const (
	// SnapshotFile is the portable, version-controllable server snapshot.
	SnapshotFile = "mcp-servers.json"

	// SecretsFile holds extracted secret values. Keep it out of version control.
	SecretsFile = "mcp-secrets.json"

	// MachineConfigFile records per-machine settings (currently just codeDir).
	MachineConfigFile = "machine-config.json"
)

// Placeholder tokens
const (
	// HomeToken stands in for the user's home directory.
	HomeToken = "${HOME}"

	// CodeDirToken stands in for the machine's code directory.
	CodeDirToken = "${CODE_DIR}"
)

// Hook-related constants
const (
	// HookConfigFile is the hook configuration filename under ~/.claude.
	HookConfigFile = "hooks.yaml"

	// DefaultStatusEndpoint receives session status updates.
	DefaultStatusEndpoint = "http://localhost:3002/api/session-status-update"

	// DefaultHookTimeoutSeconds bounds the status POST.
	DefaultHookTimeoutSeconds = 5

	// DefaultActivityLimit caps the number of records kept per activity file.
	DefaultActivityLimit = 50

	// HookDebugEnvVar enables verbose hook diagnostics when set to "1".
	HookDebugEnvVar = "MCPSYNC_HOOK_DEBUG"

	// SessionIDEnvVar overrides the session ID carried in hook events.
	SessionIDEnvVar = "CLAUDE_SESSION_ID"
)

// CodeDirCandidates is the ordered list of directory names probed under the
// home directory when no codeDir has been configured.
var CodeDirCandidates = []string{"code", "Code", "projects", "dev", "src", "workspace"}

// File permissions
const (
	// DirPermissions is the default permission mode for directories.
	DirPermissions os.FileMode = 0755

	// FilePermissions is the default permission mode for config artifacts.
	FilePermissions os.FileMode = 0644

	// SecretFilePermissions is the permission mode for the secrets store.
	SecretFilePermissions os.FileMode = 0600
)
