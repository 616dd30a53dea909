// Package settings merges and removes unihook entries in the assistants'
// hook configuration files.
//
// Claude and Gemini nest hook commands under a matcher
// (hooks.<key>[].hooks[].command); Cursor uses a flat list
// (hooks.<key>[].command) plus a top-level version field; OpenCode loads an
// ES-module plugin file instead of a JSON config.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/averlon/unihook/internal/constants"
)

// Tool describes how one assistant's hook configuration is laid out.
type Tool struct {
	// HookKey is the key inside the hooks object (e.g. "PreToolUse")
	HookKey string
	// DefaultMatcher is used when the caller supplies none
	DefaultMatcher string
	// Nested selects hooks[].hooks[].command over hooks[].command
	Nested bool
	// Version is written at the top level when non-zero (Cursor)
	Version int
	// DefaultPath is the config file location relative to the home directory
	DefaultPath string
}

// jsonTools are the assistants configured through JSON files, in display
// order.
var jsonToolNames = []string{"claude", "gemini", "cursor"}

var jsonTools = map[string]Tool{
	"claude": {
		HookKey:        "PreToolUse",
		DefaultMatcher: "Bash",
		Nested:         true,
		DefaultPath:    filepath.Join(".claude", "settings.json"),
	},
	"gemini": {
		HookKey:        "BeforeTool",
		DefaultMatcher: "run_shell_command",
		Nested:         true,
		DefaultPath:    filepath.Join(".gemini", "settings.json"),
	},
	"cursor": {
		HookKey:     "beforeShellExecution",
		Version:     1,
		DefaultPath: filepath.Join(".cursor", "hooks.json"),
	},
}

// OpencodePluginPath is the plugin file location relative to the home
// directory. OpenCode has no JSON hook config; it loads plugins directly.
var OpencodePluginPath = filepath.Join(".config", "opencode", "plugins", constants.AppName+".js")

// opencodePluginTemplate forwards bash tool calls to unihook and blocks on a
// deny verdict by throwing.
const opencodePluginTemplate = `export const UnihookPlugin = async () => {
  return {
    "tool.execute.before": async (input, output) => {
      if (input.tool !== "bash") return;
      const command = output?.args?.command ?? input?.args?.command ?? "";
      if (!command) return;
      const { execFileSync } = await import("node:child_process");
      const payload = JSON.stringify({ tool_name: "Bash", tool_input: { command } });
      const out = execFileSync("unihook", ["--source", "opencode", "--no-filter"], { input: payload });
      const verdict = JSON.parse(out.toString());
      if (verdict?.hookSpecificOutput?.permissionDecision === "deny") {
        throw new Error(verdict.hookSpecificOutput.permissionDecisionReason ?? "blocked by unihook");
      }
    }
  };
};
`

// JSONToolNames returns the JSON-configured tool names in display order.
func JSONToolNames() []string {
	return append([]string(nil), jsonToolNames...)
}

// Lookup returns the layout for a JSON-configured tool.
func Lookup(name string) (Tool, bool) {
	t, ok := jsonTools[name]
	return t, ok
}

// ResolvePath returns the absolute default config path for a tool.
func (t Tool) ResolvePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, t.DefaultPath), nil
}

// Merge injects a hook command into the tool's config file. Missing parents
// are created and the merge is idempotent: an entry whose command contains
// the given command string counts as already installed. Returns whether the
// file changed.
func Merge(path string, tool Tool, command, matcher string) (bool, error) {
	data, err := loadJSON(path)
	if err != nil {
		return false, err
	}

	if tool.Version != 0 {
		if _, ok := data["version"]; !ok {
			data["version"] = tool.Version
		}
	}

	hooks := getObject(data, "hooks")
	entries := getArray(hooks, tool.HookKey)

	if hasHook(entries, tool.Nested, command) {
		return false, nil
	}

	if matcher == "" {
		matcher = tool.DefaultMatcher
	}

	var entry map[string]any
	if tool.Nested {
		entry = map[string]any{
			"matcher": matcher,
			"hooks": []any{
				map[string]any{"type": "command", "command": command},
			},
		}
	} else {
		entry = map[string]any{"command": command}
	}

	hooks[tool.HookKey] = append(entries, entry)
	data["hooks"] = hooks

	if err := saveJSON(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes hook entries whose command contains the given command
// string, pruning empty hook arrays and the hooks object itself. Returns
// whether the file changed.
func Remove(path string, tool Tool, command string) (bool, error) {
	data, err := loadJSON(path)
	if err != nil {
		return false, err
	}

	hooks := getObject(data, "hooks")
	entries := getArray(hooks, tool.HookKey)
	if len(entries) == 0 {
		return false, nil
	}

	kept := filterHooks(entries, tool.Nested, command)
	if len(kept) == len(entries) {
		return false, nil
	}

	if len(kept) > 0 {
		hooks[tool.HookKey] = kept
	} else {
		delete(hooks, tool.HookKey)
	}
	if len(hooks) > 0 {
		data["hooks"] = hooks
	} else {
		delete(data, "hooks")
	}

	if err := saveJSON(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// WriteOpencodePlugin writes the plugin file unless it already exists.
// force overwrites. Returns whether the file was written.
func WriteOpencodePlugin(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(opencodePluginTemplate), constants.FileMode); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveOpencodePlugin deletes the plugin file. Returns whether a file was
// removed.
func RemoveOpencodePlugin(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func hasHook(entries []any, nested bool, command string) bool {
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if nested {
			for _, ih := range getArray(entry, "hooks") {
				if inner, ok := ih.(map[string]any); ok {
					if cmd, _ := inner["command"].(string); strings.Contains(cmd, command) {
						return true
					}
				}
			}
		} else {
			if cmd, _ := entry["command"].(string); strings.Contains(cmd, command) {
				return true
			}
		}
	}
	return false
}

func filterHooks(entries []any, nested bool, command string) []any {
	var kept []any
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			kept = append(kept, e)
			continue
		}
		if nested {
			var inner []any
			for _, ih := range getArray(entry, "hooks") {
				cmd := ""
				if m, ok := ih.(map[string]any); ok {
					cmd, _ = m["command"].(string)
				}
				if !strings.Contains(cmd, command) {
					inner = append(inner, ih)
				}
			}
			if len(inner) > 0 {
				entry["hooks"] = inner
				kept = append(kept, entry)
			}
		} else {
			if cmd, _ := entry["command"].(string); !strings.Contains(cmd, command) {
				kept = append(kept, entry)
			}
		}
	}
	return kept
}

func getObject(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func getArray(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func loadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func saveJSON(path string, data map[string]any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), constants.FileMode)
}
