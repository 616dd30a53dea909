package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/averlon/unihook/internal/settings"
	"github.com/spf13/cobra"
)

var (
	installCommand string
	installMatcher string
	installForce   bool
)

var installCmd = &cobra.Command{
	Use:   "install [tool...]",
	Short: "Install unihook into assistant hook configurations",
	Long: `Install merges a unihook entry into each tool's hook configuration:

  claude    ~/.claude/settings.json    (PreToolUse)
  gemini    ~/.gemini/settings.json    (BeforeTool)
  cursor    ~/.cursor/hooks.json       (beforeShellExecution)
  opencode  ~/.config/opencode/plugins/unihook.js (plugin file)

With no arguments all tools are installed. Merging is idempotent: existing
unihook entries are left alone, and other hooks are preserved.`,
	ValidArgs: append(settings.JSONToolNames(), "opencode"),
	Args:      cobra.OnlyValidArgs,
	RunE:      runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installCommand, "command", "", "Hook command to inject (default: this binary with --source <tool>)")
	installCmd.Flags().StringVar(&installMatcher, "matcher", "", "Override matcher for nested hook entries")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Overwrite an existing opencode plugin file")
}

// hookCommand builds the command line injected for a tool.
func hookCommand(tool string) (string, error) {
	if installCommand != "" {
		return installCommand, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return fmt.Sprintf("%s --source %s", exe, tool), nil
}

func selectedTools(args []string) []string {
	if len(args) == 0 {
		return append(settings.JSONToolNames(), "opencode")
	}
	return args
}

func runInstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, name := range selectedTools(args) {
		if name == "opencode" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path := filepath.Join(home, settings.OpencodePluginPath)
			written, err := settings.WriteOpencodePlugin(path, installForce)
			if err != nil {
				return fmt.Errorf("opencode: %w", err)
			}
			if written {
				fmt.Fprintf(out, "opencode: plugin written to %s\n", path)
			} else {
				fmt.Fprintf(out, "opencode: plugin already present at %s\n", path)
			}
			continue
		}

		tool, ok := settings.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown tool %q (known: %v)", name, slices.Concat(settings.JSONToolNames(), []string{"opencode"}))
		}

		path, err := tool.ResolvePath()
		if err != nil {
			return err
		}
		command, err := hookCommand(name)
		if err != nil {
			return err
		}

		changed, err := settings.Merge(path, tool, command, installMatcher)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if changed {
			fmt.Fprintf(out, "%s: hook installed in %s\n", name, path)
		} else {
			fmt.Fprintf(out, "%s: hook already installed in %s\n", name, path)
		}
	}

	return nil
}
