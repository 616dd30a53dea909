// Package cmd implements the CLI commands for unihook.
package cmd

import (
	"github.com/averlon/unihook/internal/audit"
	"github.com/averlon/unihook/internal/config"
	"github.com/averlon/unihook/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	source        string
	eventType     string
	handler       string
	noDetect      bool
	noFilter      bool
	normalizeOnly bool
	maxDepth      int
	verbose       bool
	noAuditLog    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "unihook",
	Short: "Unified hook runtime for AI coding assistants",
	Long: `unihook normalizes tool-execution hook events from several AI coding
assistants (Claude Code, Cursor, OpenCode, Gemini CLI, Windsurf, Zed) into
one canonical format.

When called without a subcommand, it reads one JSON payload from stdin,
detects the real source tool by walking the process tree, drops cross-tool
noise, and prints one JSON verdict on stdout.

Usage in ~/.claude/settings.json:
  "hooks": {
    "PreToolUse": [{
      "matcher": "Bash",
      "hooks": [{"type": "command", "command": "unihook --source claude"}]
    }]
  }`,
	// Run the hook by default when no subcommand is given
	RunE: runHook,
	// Silence usage on errors
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&noAuditLog, "no-audit-log", false, "Disable audit logging")

	// Pipeline flags
	rootCmd.Flags().StringVar(&source, "source", "claude", "Claimed source tool (may be overridden by detection)")
	rootCmd.Flags().StringVar(&eventType, "event-type", "PreToolUse", "Event type label for normalization")
	rootCmd.Flags().StringVar(&handler, "handler", "", "External handler command to process events")
	rootCmd.Flags().BoolVar(&noDetect, "no-detect", false, "Disable ancestry-based source detection")
	rootCmd.Flags().BoolVar(&noFilter, "no-filter", false, "Disable noise filtering")
	rootCmd.Flags().BoolVar(&normalizeOnly, "normalize-only", false, "Output the normalized event and exit (no handler)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum ancestry depth to examine (0 = config default)")
}

// initApp initializes the application (logger, config, audit)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})

	// Config failures fall back to embedded defaults inside Init
	config.Init()

	// Audit logging (unless disabled); failures are diagnostics only
	audit.Init("", noAuditLog)
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
