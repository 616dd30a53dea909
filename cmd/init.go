package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/averlon/unihook/internal/config"
	"github.com/averlon/unihook/internal/constants"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new unihook configuration file",
	Long: `Initialize creates a new unihook configuration file with default settings.

The config file is written to ~/.config/unihook/config.toml (or the path
specified by the UNIHOOK_CONFIG environment variable).

Use --force to overwrite an existing configuration file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, config.GetDefaultConfig(), constants.FileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to: %s\n", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'unihook validate' to verify your configuration.")

	return nil
}
