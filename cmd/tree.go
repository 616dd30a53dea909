package cmd

import (
	"fmt"
	"os"

	"github.com/averlon/unihook/internal/config"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the process ancestry with detection results",
	Long: `Tree walks the current process's ancestry the same way source detection
does and prints each visible ancestor with its detection result.

Useful for debugging why an event was (or was not) attributed to a tool.`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	detector := newDetector(config.Get())

	fmt.Fprintf(out, "Current PID: %d\n", os.Getpid())
	fmt.Fprintf(out, "Parent PID:  %d\n\n", os.Getppid())

	nodes := detector.Tree(os.Getppid())
	if len(nodes) == 0 {
		fmt.Fprintln(out, "No visible ancestors.")
	}
	for i, node := range nodes {
		cmdline := node.Cmdline
		if len(cmdline) > 80 {
			cmdline = cmdline[:80] + "..."
		}
		marker := ""
		if node.Detected != "" {
			marker = "  <-- " + node.Detected
		}
		fmt.Fprintf(out, "  [%d] PID %d: %s%s\n", i, node.PID, cmdline, marker)
	}

	fmt.Fprintln(out)
	if tool, ok := detector.Detect(os.Getppid()); ok {
		fmt.Fprintf(out, "Detection: %s\n", tool)
	} else {
		fmt.Fprintln(out, "Detection: none (claimed source is used as-is)")
	}
	return nil
}
