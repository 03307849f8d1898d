package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mcpsync/internal/constants"
	"mcpsync/internal/hook"
	"mcpsync/internal/terminal"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Claude Code hook entry points",
		Long: `Subcommands wired into Claude Code's hook system. Each reads a hook event
as JSON from stdin and writes a decision to stdout. Diagnostics go to stderr
so the decision stream stays clean; set ` + constants.HookDebugEnvVar + `=1 for verbose output.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
			if os.Getenv(constants.HookDebugEnvVar) == "1" {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to the hook config (defaults to ~/.claude/"+constants.HookConfigFile+")")

	cmd.AddCommand(
		newHookStatusCmd(),
		newHookGuardCmd(),
		newHookActivityCmd(),
		newHookInitCmd(),
	)
	return cmd
}

// hookConfig loads the hook configuration for a subcommand.
func hookConfig(cmd *cobra.Command) (hook.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return hook.Config{}, fmt.Errorf("invalid config flag: %w", err)
	}
	if path == "" {
		path, err = hook.DefaultConfigPath()
		if err != nil {
			return hook.Config{}, err
		}
	}
	return hook.LoadConfig(path)
}

func newHookStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report session status to the local backend",
		Long: `Reads a hook event from stdin and POSTs a session status update to the
configured endpoint. Delivery failures are logged and swallowed; the decision
is always allow so a dead backend never blocks the editor.`,
		RunE: runHookStatus,
	}
	cmd.Flags().String("type", "", "Hook type override (SessionStart, UserPromptSubmit, Stop)")
	return cmd
}

func runHookStatus(cmd *cobra.Command, args []string) error {
	cfg, err := hookConfig(cmd)
	if err != nil {
		log.WithError(err).Warn("using default hook config")
		cfg = hook.DefaultConfig()
	}

	ev, err := hook.DecodeEvent(os.Stdin)
	if err != nil {
		log.WithError(err).Warn("malformed hook event")
		return hook.Allow("malformed hook event").Emit(os.Stdout)
	}

	override, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("invalid type flag: %w", err)
	}
	if override != "" {
		ev.HookType = override
	}

	if ev.SessionID == "" {
		return hook.Allow("no session ID available").Emit(os.Stdout)
	}

	status := cfg.StatusFor(ev.HookType)
	if err := hook.NewNotifier(cfg).Notify(ev, status); err != nil {
		log.WithError(err).Warn("status update failed")
		return hook.Allow("status update failed").Emit(os.Stdout)
	}

	log.WithFields(log.Fields{"session": ev.SessionID, "status": status}).Debug("status updated")
	return hook.Allow("status updated: " + status).Emit(os.Stdout)
}

func newHookGuardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guard",
		Short: "Block file edits under protected path prefixes",
		Long: `PreToolUse hook. Blocks Edit/Write tool calls whose target path falls
under one of the configured blocked prefixes; everything else is allowed.`,
		RunE: runHookGuard,
	}
}

func runHookGuard(cmd *cobra.Command, args []string) error {
	cfg, err := hookConfig(cmd)
	if err != nil {
		log.WithError(err).Warn("using default hook config")
		cfg = hook.DefaultConfig()
	}

	ev, err := hook.DecodeEvent(os.Stdin)
	if err != nil {
		log.WithError(err).Warn("malformed hook event")
		return hook.Allow("malformed hook event").Emit(os.Stdout)
	}

	decision := hook.NewGuard(cfg).Check(ev)
	if decision.Decision == "block" {
		log.WithFields(log.Fields{"tool": ev.ToolName, "path": ev.FilePath()}).Warn("blocked file edit")
	}
	return decision.Emit(os.Stdout)
}

func newHookActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Record tool activity for the current session",
		Long: `PreToolUse/PostToolUse hook. Appends a short description of the tool call
to the session's activity file, keeping only the most recent entries.`,
		RunE: runHookActivity,
	}
	cmd.Flags().String("phase", "start", "Activity phase: start (PreToolUse) or end (PostToolUse)")
	return cmd
}

func runHookActivity(cmd *cobra.Command, args []string) error {
	cfg, err := hookConfig(cmd)
	if err != nil {
		log.WithError(err).Warn("using default hook config")
		cfg = hook.DefaultConfig()
	}
	phase, err := cmd.Flags().GetString("phase")
	if err != nil {
		return fmt.Errorf("invalid phase flag: %w", err)
	}

	ev, err := hook.DecodeEvent(os.Stdin)
	if err != nil {
		log.WithError(err).Warn("malformed hook event")
		return nil
	}

	rec, err := hook.NewActivityLog(cfg).Append(ev, phase)
	if err != nil {
		log.WithError(err).Warn("failed to record activity")
		return nil
	}
	log.WithFields(log.Fields{"tool": rec.Tool, "message": rec.Message}).Debug("activity recorded")
	return nil
}

func newHookInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create the hook configuration",
		RunE:  runHookInit,
	}
}

func runHookInit(cmd *cobra.Command, args []string) error {
	if !terminal.IsTerminal() {
		return fmt.Errorf("hook init requires an interactive terminal")
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("invalid config flag: %w", err)
	}
	if path == "" {
		path, err = hook.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := hook.LoadConfig(path)
	if err != nil {
		cfg = hook.DefaultConfig()
	}

	endpointPrompt := &survey.Input{
		Message: "Status endpoint URL:",
		Default: cfg.Endpoint,
		Help:    "Local backend that receives session status updates",
	}
	if err := survey.AskOne(endpointPrompt, &cfg.Endpoint, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var prefixes string
	prefixPrompt := &survey.Multiline{
		Message: "Blocked path prefixes (one per line, empty for none):",
		Help:    "File edits under these directories will be blocked by 'mcpsync hook guard'",
	}
	if err := survey.AskOne(prefixPrompt, &prefixes); err != nil {
		return err
	}
	cfg.BlockedPrefixes = nil
	for _, line := range strings.Split(prefixes, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cfg.BlockedPrefixes = append(cfg.BlockedPrefixes, line)
		}
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Hook config written to %s\n", path)
	return nil
}
