package hook

// Event is the canonical form every heterogeneous hook payload is converted
// into before any policy logic runs. Created once per invocation and
// immutable thereafter.
type Event struct {
	EventType string         `json:"event_type"`
	Source    string         `json:"source"`
	SessionID string         `json:"session_id"`
	Cwd       string         `json:"cwd"`
	ToolName  string         `json:"tool_name"`
	ToolInput map[string]any `json:"tool_input"`
	Timestamp string         `json:"timestamp"`
	// RawPayload is the untouched original mapping, retained for downstream
	// auditing and debugging. Normalization is additive, never destructive.
	RawPayload Payload `json:"raw_payload"`
}

// Normalize maps a raw payload plus resolved source into the canonical
// event. Tool name falls back from tool_name to tool (Gemini), tool input
// from tool_input to args (Cursor); absent string fields become "".
func Normalize(source string, p Payload, eventType string) Event {
	toolName := getString(p, "tool_name")
	if toolName == "" {
		toolName = getString(p, "tool")
	}

	toolInput := getMap(p, "tool_input")
	if toolInput == nil {
		toolInput = getMap(p, "args")
	}
	if toolInput == nil {
		toolInput = map[string]any{}
	}

	return Event{
		EventType:  eventType,
		Source:     source,
		SessionID:  getString(p, "session_id"),
		Cwd:        ExtractCwd(p),
		ToolName:   toolName,
		ToolInput:  toolInput,
		Timestamp:  getString(p, "timestamp"),
		RawPayload: p,
	}
}
