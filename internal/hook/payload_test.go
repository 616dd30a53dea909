package hook

import "testing"

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{name: "valid object", input: `{"tool_name":"Bash"}`, wantLen: 1},
		{name: "empty input", input: "", wantLen: 0},
		{name: "malformed JSON", input: `{"tool_name":`, wantLen: 0},
		{name: "null", input: `null`, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePayload([]byte(tt.input))
			if p == nil {
				t.Fatal("ParsePayload returned nil, want empty payload")
			}
			if len(p) != tt.wantLen {
				t.Errorf("len(payload) = %d, want %d", len(p), tt.wantLen)
			}
		})
	}
}

func TestExtractCwd(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{
			name:    "direct cwd field",
			payload: Payload{"cwd": "/proj"},
			want:    "/proj",
		},
		{
			name:    "gemini working_directory",
			payload: Payload{"working_directory": "/proj"},
			want:    "/proj",
		},
		{
			name:    "nested in tool_input",
			payload: Payload{"tool_input": map[string]any{"cwd": "/proj"}},
			want:    "/proj",
		},
		{
			name:    "nothing applicable",
			payload: Payload{"tool_name": "Bash"},
			want:    "",
		},
		{
			name: "cwd wins over working_directory",
			payload: Payload{
				"cwd":               "/direct",
				"working_directory": "/wd",
			},
			want: "/direct",
		},
		{
			name: "working_directory wins over nested cwd",
			payload: Payload{
				"working_directory": "/wd",
				"tool_input":        map[string]any{"cwd": "/nested"},
			},
			want: "/wd",
		},
		{
			name: "cwd wins over nested cwd",
			payload: Payload{
				"cwd":        "/direct",
				"tool_input": map[string]any{"cwd": "/nested"},
			},
			want: "/direct",
		},
		{
			name:    "non-string cwd ignored",
			payload: Payload{"cwd": 42, "working_directory": "/wd"},
			want:    "/wd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCwd(tt.payload); got != tt.want {
				t.Errorf("ExtractCwd() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCommand(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{
			name:    "tool_input command",
			payload: Payload{"tool_input": map[string]any{"command": "ls"}},
			want:    "ls",
		},
		{
			name:    "cursor args command",
			payload: Payload{"args": map[string]any{"command": "git status"}},
			want:    "git status",
		},
		{
			name: "tool_input wins over args",
			payload: Payload{
				"tool_input": map[string]any{"command": "from-tool-input"},
				"args":       map[string]any{"command": "from-args"},
			},
			want: "from-tool-input",
		},
		{
			name: "empty tool_input command falls through to args",
			payload: Payload{
				"tool_input": map[string]any{"command": ""},
				"args":       map[string]any{"command": "from-args"},
			},
			want: "from-args",
		},
		{
			name:    "nothing applicable",
			payload: Payload{"tool_name": "Read"},
			want:    "",
		},
		{
			name:    "tool_input not a mapping",
			payload: Payload{"tool_input": "ls"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCommand(tt.payload); got != tt.want {
				t.Errorf("ExtractCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
