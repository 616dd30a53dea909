package hook

import (
	"encoding/json"
	"io"
	"time"

	"github.com/averlon/unihook/internal/constants"
	"github.com/averlon/unihook/internal/logger"
)

// Options configures one pipeline run.
type Options struct {
	// Source is the claimed source tool (default "claude"); detection may
	// override it
	Source string
	// EventType labels the normalized event (default "PreToolUse")
	EventType string
	// Handler is an external decision program command line; empty means the
	// default allow
	Handler string
	// HandlerTimeout bounds the handler invocation (default 30s)
	HandlerTimeout time.Duration
	// DetectSource resolves the real source from process ancestry; nil
	// disables detection
	DetectSource func() (string, bool)
	// NoFilter disables the noise filter
	NoFilter bool
	// NoiseDirs are config-directory substrings for the Cursor noise rule
	NoiseDirs []string
	// NormalizeOnly emits the normalized event instead of a verdict
	NormalizeOnly bool
}

// Result is the outcome of one pipeline run.
type Result struct {
	ClaimedSource string
	Source        string
	Dropped       bool
	DropReason    string
	Event         *Event
	// Output is the single JSON document to print on stdout
	Output   string
	Duration time.Duration
}

// Process runs the pipeline for one raw payload: parse, resolve source,
// filter, normalize, then hand off to the handler (or default to allow).
// Recoverable failures never surface to the caller; the output is always one
// well-formed JSON document.
func Process(r io.Reader, opts Options) Result {
	startTime := time.Now()

	data, err := io.ReadAll(r)
	if err != nil {
		logger.Debug("failed to read input", "error", err)
		data = nil
	}
	payload := ParsePayload(data)

	claimed := opts.Source
	if claimed == "" {
		claimed = constants.DefaultSource
	}
	eventType := opts.EventType
	if eventType == "" {
		eventType = constants.DefaultEventType
	}

	source := claimed
	if opts.DetectSource != nil {
		if inferred, ok := opts.DetectSource(); ok && inferred != source {
			logger.Debug("source override", "claimed", source, "detected", inferred)
			source = inferred
		}
	}
	logger.Debug("effective source", "source", source)

	result := Result{ClaimedSource: claimed, Source: source}

	if !opts.NoFilter {
		if drop, reason := ShouldDrop(source, payload, opts.NoiseDirs); drop {
			logger.Debug("event dropped", "reason", reason)
			result.Dropped = true
			result.DropReason = reason
			result.Output = Allow().JSON()
			result.Duration = time.Since(startTime)
			return result
		}
	}

	event := Normalize(source, payload, eventType)
	result.Event = &event

	if opts.NormalizeOnly {
		out, err := json.MarshalIndent(event, "", "  ")
		if err != nil {
			logger.Debug("failed to marshal normalized event", "error", err)
			result.Output = Allow().JSON()
		} else {
			result.Output = string(out)
		}
		result.Duration = time.Since(startTime)
		return result
	}

	verdict := Allow()
	if opts.Handler != "" {
		verdict = RunHandler(opts.Handler, event, opts.HandlerTimeout)
	}

	result.Output = verdict.JSON()
	result.Duration = time.Since(startTime)
	return result
}
