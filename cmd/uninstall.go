package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/averlon/unihook/internal/settings"
	"github.com/spf13/cobra"
)

var uninstallCommand string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [tool...]",
	Short: "Remove unihook from assistant hook configurations",
	Long: `Uninstall removes unihook entries from each tool's hook configuration and
deletes the opencode plugin file. Other hooks and settings are preserved;
empty hook arrays are pruned.

With no arguments all tools are cleaned up.`,
	ValidArgs: append(settings.JSONToolNames(), "opencode"),
	Args:      cobra.OnlyValidArgs,
	RunE:      runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().StringVar(&uninstallCommand, "command", "unihook", "Command substring identifying entries to remove")
}

func runUninstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, name := range selectedTools(args) {
		if name == "opencode" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path := filepath.Join(home, settings.OpencodePluginPath)
			removed, err := settings.RemoveOpencodePlugin(path)
			if err != nil {
				return fmt.Errorf("opencode: %w", err)
			}
			if removed {
				fmt.Fprintf(out, "opencode: plugin removed from %s\n", path)
			} else {
				fmt.Fprintf(out, "opencode: no plugin at %s\n", path)
			}
			continue
		}

		tool, ok := settings.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown tool %q", name)
		}

		path, err := tool.ResolvePath()
		if err != nil {
			return err
		}

		changed, err := settings.Remove(path, tool, uninstallCommand)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if changed {
			fmt.Fprintf(out, "%s: hook removed from %s\n", name, path)
		} else {
			fmt.Fprintf(out, "%s: no hook found in %s\n", name, path)
		}
	}

	return nil
}
