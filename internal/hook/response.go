package hook

import (
	"encoding/json"
	"fmt"

	"github.com/averlon/unihook/internal/logger"
)

// Permission decisions
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Verdict is the response shape understood by the calling assistant's hook
// runner.
type Verdict struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
	Continue           bool           `json:"continue"`
}

// SpecificOutput contains the permission decision details.
type SpecificOutput struct {
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

// Allow builds the allow verdict.
func Allow() Verdict {
	return Verdict{
		HookSpecificOutput: SpecificOutput{PermissionDecision: DecisionAllow},
		Continue:           true,
	}
}

// Deny builds the deny verdict with the given reason.
func Deny(reason string) Verdict {
	return Verdict{
		HookSpecificOutput: SpecificOutput{
			PermissionDecision:       DecisionDeny,
			PermissionDecisionReason: reason,
		},
		Continue: false,
	}
}

// IsAllow reports whether the verdict permits the tool call.
func (v Verdict) IsAllow() bool {
	return v.HookSpecificOutput.PermissionDecision == DecisionAllow
}

// JSON returns the serialized verdict.
func (v Verdict) JSON() string {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Debug("failed to marshal verdict", "error", err)
		return `{"hookSpecificOutput":{"permissionDecision":"allow"},"continue":true}`
	}
	return string(data)
}

// ParseVerdict decodes a verdict from handler output. Output that does not
// carry a recognizable permission decision is an error, which callers treat
// as fail-open.
func ParseVerdict(data []byte) (Verdict, error) {
	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return Verdict{}, err
	}
	switch v.HookSpecificOutput.PermissionDecision {
	case DecisionAllow, DecisionDeny:
		return v, nil
	default:
		return Verdict{}, fmt.Errorf("unrecognized permission decision %q", v.HookSpecificOutput.PermissionDecision)
	}
}
