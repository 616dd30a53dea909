package hook

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeClaudePayload(t *testing.T) {
	payload := ParsePayload([]byte(`{
		"tool_name": "Bash",
		"tool_input": {"command": "npm test"},
		"cwd": "/proj",
		"session_id": "abc",
		"timestamp": "T"
	}`))

	event := Normalize("claude", payload, "PreToolUse")

	if event.Source != "claude" {
		t.Errorf("Source = %q, want claude", event.Source)
	}
	if event.EventType != "PreToolUse" {
		t.Errorf("EventType = %q, want PreToolUse", event.EventType)
	}
	if event.ToolName != "Bash" {
		t.Errorf("ToolName = %q, want Bash", event.ToolName)
	}
	if event.Cwd != "/proj" {
		t.Errorf("Cwd = %q, want /proj", event.Cwd)
	}
	if event.SessionID != "abc" {
		t.Errorf("SessionID = %q, want abc", event.SessionID)
	}
	if event.Timestamp != "T" {
		t.Errorf("Timestamp = %q, want T", event.Timestamp)
	}
	want := map[string]any{"command": "npm test"}
	if !reflect.DeepEqual(event.ToolInput, want) {
		t.Errorf("ToolInput = %v, want %v", event.ToolInput, want)
	}
}

func TestNormalizeGeminiPayload(t *testing.T) {
	payload := ParsePayload([]byte(`{
		"tool": "run_shell_command",
		"args": {"command": "git status"},
		"working_directory": "/proj"
	}`))

	event := Normalize("gemini", payload, "PreToolUse")

	if event.ToolName != "run_shell_command" {
		t.Errorf("ToolName = %q, want run_shell_command", event.ToolName)
	}
	if event.Cwd != "/proj" {
		t.Errorf("Cwd = %q, want /proj", event.Cwd)
	}
	want := map[string]any{"command": "git status"}
	if !reflect.DeepEqual(event.ToolInput, want) {
		t.Errorf("ToolInput = %v, want %v", event.ToolInput, want)
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	event := Normalize("claude", Payload{}, "PreToolUse")

	if event.ToolName != "" || event.SessionID != "" || event.Cwd != "" || event.Timestamp != "" {
		t.Errorf("absent fields must fall back to empty strings, got %+v", event)
	}
	if event.ToolInput == nil || len(event.ToolInput) != 0 {
		t.Errorf("ToolInput = %v, want empty map", event.ToolInput)
	}
}

func TestNormalizeToolNamePrecedence(t *testing.T) {
	payload := Payload{"tool_name": "Bash", "tool": "run_shell_command"}
	event := Normalize("claude", payload, "PreToolUse")
	if event.ToolName != "Bash" {
		t.Errorf("ToolName = %q, tool_name must win over tool", event.ToolName)
	}
}

func TestNormalizePreservesRawPayload(t *testing.T) {
	raw := []byte(`{
		"tool_name": "Bash",
		"tool_input": {"command": "ls", "timeout": 30},
		"nested": {"deep": [1, 2, {"k": "v"}]},
		"extra": null
	}`)
	payload := ParsePayload(raw)

	var original Payload
	if err := json.Unmarshal(raw, &original); err != nil {
		t.Fatal(err)
	}

	event := Normalize("claude", payload, "PreToolUse")

	if !reflect.DeepEqual(map[string]any(event.RawPayload), map[string]any(original)) {
		t.Errorf("RawPayload diverged from input:\ngot  %v\nwant %v", event.RawPayload, original)
	}
}
