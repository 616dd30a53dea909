package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/averlon/unihook/internal/audit"
	"github.com/averlon/unihook/internal/config"
	"github.com/averlon/unihook/internal/hook"
	"github.com/averlon/unihook/internal/proctree"
	"github.com/spf13/cobra"
)

// runHook is the default command: one payload in on stdin, one JSON document
// out on stdout.
func runHook(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	// An unknown claimed source is a configuration error and the only
	// failure class that aborts before pipeline work.
	if err := validateSource(source, cfg); err != nil {
		return err
	}

	opts := hook.Options{
		Source:         source,
		EventType:      eventType,
		Handler:        handler,
		HandlerTimeout: cfg.HandlerTimeout,
		NoFilter:       noFilter,
		NoiseDirs:      cfg.NoiseDirs,
		NormalizeOnly:  normalizeOnly,
	}

	if !noDetect {
		detector := newDetector(cfg)
		opts.DetectSource = func() (string, bool) {
			return detector.Detect(os.Getppid())
		}
	}

	res := hook.Process(os.Stdin, opts)
	fmt.Fprintln(cmd.OutOrStdout(), res.Output)

	logAudit(res)
	return nil
}

func newDetector(cfg *config.Config) *proctree.Detector {
	depth := cfg.MaxDepth
	if maxDepth > 0 {
		depth = maxDepth
	}
	return proctree.NewDetector(proctree.NewInspector(), cfg.ExtraSignatures, depth)
}

// knownSources returns the accepted --source values: the default claimed
// source plus every tool in the signature table.
func knownSources(cfg *config.Config) []string {
	sources := []string{"claude"}
	sources = append(sources, proctree.BuiltinTools()...)
	for _, sig := range cfg.ExtraSignatures {
		if !slices.Contains(sources, sig.Tool) {
			sources = append(sources, sig.Tool)
		}
	}
	return sources
}

func validateSource(src string, cfg *config.Config) error {
	sources := knownSources(cfg)
	if !slices.Contains(sources, src) {
		return fmt.Errorf("unknown source %q (known: %v)", src, sources)
	}
	return nil
}

func logAudit(res hook.Result) {
	entry := audit.Entry{
		DurationMs:    float64(res.Duration.Microseconds()) / 1000.0,
		ClaimedSource: res.ClaimedSource,
		Source:        res.Source,
		EventType:     eventType,
		Dropped:       res.Dropped,
		DropReason:    res.DropReason,
		Handler:       handler,
		Output:        res.Output,
	}
	if res.Event != nil {
		entry.ToolName = res.Event.ToolName
		entry.Cwd = res.Event.Cwd
	}
	audit.Log(entry)
}
