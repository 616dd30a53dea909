package cmd

import (
	"fmt"
	"strings"

	"github.com/averlon/unihook/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and show effective settings",
	Long: `Validate checks the unihook configuration file and displays the effective
detection and filtering settings.

This is useful for:
- Checking that your config.toml syntax is correct
- Seeing the signature matching order
- Debugging noise filtering`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("failed to load configuration")
	}
	if err := config.InitError(); err != nil {
		fmt.Fprintf(out, "Warning: %v (embedded defaults in effect)\n\n", err)
	} else {
		fmt.Fprintln(out, "Configuration valid!")
		fmt.Fprintln(out)
	}

	detector := newDetector(cfg)

	fmt.Fprintf(out, "Known sources: %s\n", strings.Join(knownSources(cfg), ", "))
	fmt.Fprintf(out, "Max ancestry depth: %d\n", cfg.MaxDepth)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Signature matching order (%d tools):\n", len(detector.Tools()))
	for _, tool := range detector.Tools() {
		fmt.Fprintf(out, "  - %s\n", tool)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Noise directories (cursor drop rule): %s\n", strings.Join(cfg.NoiseDirs, ", "))
	fmt.Fprintf(out, "Handler timeout: %s\n", cfg.HandlerTimeout)

	return nil
}
