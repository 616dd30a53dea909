// Package hook implements the event normalization and filtering pipeline
// for unihook.
//
// One invocation handles one payload: resolve the real source, drop noise,
// normalize to the canonical event shape, optionally consult an external
// handler, and emit one JSON verdict.
package hook

import (
	"encoding/json"

	"github.com/averlon/unihook/internal/logger"
)

// Payload is one assistant's raw hook invocation data. The schema varies by
// tool and is never validated beyond defensive field lookups; shape-sniffing
// stays in this file and event.go so everything downstream works on Event.
type Payload map[string]any

// ParsePayload decodes a raw JSON payload. Empty or malformed input yields
// an empty payload rather than an error; the pipeline proceeds and
// ultimately answers with allow.
func ParsePayload(data []byte) Payload {
	if len(data) == 0 {
		return Payload{}
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Debug("invalid input JSON, treating as empty payload", "error", err)
		return Payload{}
	}
	if p == nil {
		return Payload{}
	}
	return p
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// ExtractCwd pulls the working directory out of a payload. Field priority is
// a fixed contract: the direct cwd field (Claude, Cursor), then
// working_directory (Gemini), then a cwd nested in tool_input (OpenCode).
func ExtractCwd(p Payload) string {
	if cwd := getString(p, "cwd"); cwd != "" {
		return cwd
	}

	if wd := getString(p, "working_directory"); wd != "" {
		return wd
	}

	if toolInput := getMap(p, "tool_input"); toolInput != nil {
		if cwd := getString(toolInput, "cwd"); cwd != "" {
			return cwd
		}
	}

	return ""
}

// ExtractCommand pulls a shell command out of a payload: tool_input.command
// (Claude, Gemini) before args.command (Cursor).
func ExtractCommand(p Payload) string {
	if toolInput := getMap(p, "tool_input"); toolInput != nil {
		if cmd := getString(toolInput, "command"); cmd != "" {
			return cmd
		}
	}

	if args := getMap(p, "args"); args != nil {
		if cmd := getString(args, "command"); cmd != "" {
			return cmd
		}
	}

	return ""
}
