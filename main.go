// unihook - Unified hook runtime for AI coding assistants
//
// Several assistants (Cursor, OpenCode, Gemini CLI, ...) read shared hook
// configuration files, so a hook nominally installed for one tool fires for
// all of them. unihook recovers the real source by walking the process tree,
// drops cross-tool noise, normalizes the payload into one canonical event,
// and answers with a permission verdict.
//
// Usage in ~/.claude/settings.json:
//
//	"hooks": {
//	  "PreToolUse": [{
//	    "matcher": "Bash",
//	    "hooks": [{"type": "command", "command": "unihook --source claude"}]
//	  }]
//	}
//
// Test:
//
//	echo '{"tool_name": "Bash", "tool_input": {"command": "npm test"}}' | unihook --normalize-only
package main

import (
	"os"

	"github.com/averlon/unihook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
