package hook

import "testing"

var testNoiseDirs = []string{".claude"}

func TestShouldDrop(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		payload  Payload
		wantDrop bool
	}{
		{
			name:     "opencode always dropped",
			source:   "opencode",
			payload:  Payload{"tool_input": map[string]any{"command": "ls"}},
			wantDrop: true,
		},
		{
			name:     "opencode dropped with empty payload",
			source:   "opencode",
			payload:  Payload{},
			wantDrop: true,
		},
		{
			name:     "cursor cwd in claude config dir",
			source:   "cursor",
			payload:  Payload{"cwd": "/home/u/.claude/projects"},
			wantDrop: true,
		},
		{
			name:     "cursor command touching claude config dir",
			source:   "cursor",
			payload:  Payload{"args": map[string]any{"command": "cat ~/.claude/settings.json"}},
			wantDrop: true,
		},
		{
			name:     "cursor clean event kept",
			source:   "cursor",
			payload:  Payload{"cwd": "/proj", "args": map[string]any{"command": "git status"}},
			wantDrop: false,
		},
		{
			name:     "claude never dropped",
			source:   "claude",
			payload:  Payload{"cwd": "/home/u/.claude"},
			wantDrop: false,
		},
		{
			name:     "gemini never dropped",
			source:   "gemini",
			payload:  Payload{"working_directory": "/home/u/.claude"},
			wantDrop: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drop, reason := ShouldDrop(tt.source, tt.payload, testNoiseDirs)
			if drop != tt.wantDrop {
				t.Errorf("ShouldDrop(%q) = %v, want %v", tt.source, drop, tt.wantDrop)
			}
			if drop && reason == "" {
				t.Error("dropped event carries no reason")
			}
			if !drop && reason != "" {
				t.Errorf("kept event carries reason %q", reason)
			}
		})
	}
}

func TestShouldDropConfiguredNoiseDirs(t *testing.T) {
	payload := Payload{"cwd": "/home/u/.gemini/tmp"}

	if drop, _ := ShouldDrop("cursor", payload, testNoiseDirs); drop {
		t.Error("dropped for a directory not in the noise list")
	}
	if drop, _ := ShouldDrop("cursor", payload, []string{".claude", ".gemini"}); !drop {
		t.Error("not dropped for a configured noise directory")
	}
}
