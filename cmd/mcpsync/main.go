package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mcpsync/internal/claudeconf"
	"mcpsync/internal/constants"
	"mcpsync/internal/machine"
	"mcpsync/internal/platform"
	"mcpsync/internal/snapshot"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcpsync",
		Short: "Portable MCP server configuration",
		Long:  "Extracts MCP server definitions from the live Claude Code configuration into a portable, secret-free snapshot, and restores them on other machines.",
	}

	rootCmd.AddCommand(
		newExtractCmd(),
		newRestoreCmd(),
		newHookCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addArtifactFlags registers the flags shared by extract and restore.
func addArtifactFlags(cmd *cobra.Command) {
	cmd.Flags().String("live", "", "Path to the live Claude configuration (defaults to ~/"+constants.LiveConfigFile+")")
	cmd.Flags().String("snapshot", constants.SnapshotFile, "Path to the portable snapshot")
	cmd.Flags().String("secrets", constants.SecretsFile, "Path to the secrets store (keep out of version control)")
	cmd.Flags().String("machine", constants.MachineConfigFile, "Path to the machine config")
	cmd.Flags().String("code-dir", "", "Code directory for path abstraction (probed under $HOME if unset)")
}

// artifactPaths resolves the shared flags into concrete paths and a code
// directory, creating the machine config lazily when probing succeeds.
func artifactPaths(cmd *cobra.Command) (live, snap, secretsPath, codeDir, homeDir string, err error) {
	live, err = cmd.Flags().GetString("live")
	if err != nil {
		return "", "", "", "", "", fmt.Errorf("invalid live flag: %w", err)
	}
	if live == "" {
		live, err = claudeconf.DefaultPath()
		if err != nil {
			return "", "", "", "", "", err
		}
	}
	snap, err = cmd.Flags().GetString("snapshot")
	if err != nil {
		return "", "", "", "", "", fmt.Errorf("invalid snapshot flag: %w", err)
	}
	secretsPath, err = cmd.Flags().GetString("secrets")
	if err != nil {
		return "", "", "", "", "", fmt.Errorf("invalid secrets flag: %w", err)
	}
	machinePath, err := cmd.Flags().GetString("machine")
	if err != nil {
		return "", "", "", "", "", fmt.Errorf("invalid machine flag: %w", err)
	}
	codeDirFlag, err := cmd.Flags().GetString("code-dir")
	if err != nil {
		return "", "", "", "", "", fmt.Errorf("invalid code-dir flag: %w", err)
	}

	resolver, err := machine.NewResolver(machinePath)
	if err != nil {
		return "", "", "", "", "", err
	}
	codeDir, err = resolver.ResolveCodeDir(codeDirFlag)
	if err != nil {
		return "", "", "", "", "", err
	}
	return live, snap, secretsPath, codeDir, resolver.HomeDir(), nil
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract MCP servers into a portable snapshot",
		Long: `Reads the live Claude configuration and writes a portable snapshot with
machine paths and secrets replaced by ${...} placeholders. Extracted secret
values are upserted into the secrets store. The live configuration is never
modified.`,
		RunE: runExtract,
	}
	addArtifactFlags(cmd)
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	live, snap, secretsPath, codeDir, homeDir, err := artifactPaths(cmd)
	if err != nil {
		return err
	}

	extractor := &snapshot.Extractor{
		LiveConfigPath: live,
		SnapshotPath:   snap,
		SecretsPath:    secretsPath,
		CodeDir:        codeDir,
		HomeDir:        homeDir,
	}
	result, err := extractor.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d global servers and %d project configs to %s\n",
		result.GlobalServers, result.Projects, filepath.Base(snap))
	if result.SecretsFound > 0 {
		fmt.Printf("Secrets captured: %d (%d new or changed) -> %s\n",
			result.SecretsFound, result.SecretsChanged, filepath.Base(secretsPath))
		fmt.Printf("  %s\n", strings.Join(result.SecretNames, ", "))
	} else {
		fmt.Println("No secrets found.")
	}
	return nil
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore MCP servers from a portable snapshot",
		Long: `Reads the portable snapshot, resolves ${...} placeholders from the secrets
store and machine config, and merges the servers into the live Claude
configuration. Unrelated settings are preserved; projects whose directory
does not exist on this machine are skipped.`,
		RunE: runRestore,
	}
	addArtifactFlags(cmd)
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	live, snap, secretsPath, codeDir, homeDir, err := artifactPaths(cmd)
	if err != nil {
		return err
	}

	restorer := &snapshot.Restorer{
		LiveConfigPath: live,
		SnapshotPath:   snap,
		SecretsPath:    secretsPath,
		CodeDir:        codeDir,
		HomeDir:        homeDir,
	}
	result, err := restorer.Run()
	if err != nil {
		return err
	}

	if !result.SecretsLoaded {
		fmt.Fprintf(os.Stderr, "Warning: no secrets store at %s; placeholders left unresolved\n", secretsPath)
	}
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: unresolved placeholders: %s\n", strings.Join(result.Unresolved, ", "))
	}

	fmt.Printf("Restored %d global servers\n", result.GlobalServers)
	fmt.Printf("Restored %d project configs (%d skipped)\n", result.ProjectsRestored, result.ProjectsSkipped)
	for _, path := range result.SkippedPaths {
		fmt.Printf("  skipped %s (directory not found)\n", path)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mcpsync version %s\n", version)
			fmt.Printf("Platform: %s\n", platform.Detect())
		},
	}
}
