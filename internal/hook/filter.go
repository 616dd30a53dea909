package hook

import (
	"fmt"
	"strings"
)

// ShouldDrop decides whether an event is cross-tool noise to be silently
// dropped (dropped events still answer allow). Rules run in order, first
// match wins:
//
//  1. opencode events are always dropped; its dedicated plugin already
//     handles them and processing here would duplicate them.
//  2. cursor events are dropped when the extracted cwd or command references
//     another assistant's config directory (default .claude), which covers
//     both "opened inside that directory" and "shell command touching it".
//
// Pure and side-effect free; ancestry resolution happens upstream and is
// passed in as source.
func ShouldDrop(source string, p Payload, noiseDirs []string) (bool, string) {
	if source == "opencode" {
		return true, "opencode events handled by dedicated plugin"
	}

	if source == "cursor" {
		cwd := ExtractCwd(p)
		cmd := ExtractCommand(p)
		for _, dir := range noiseDirs {
			if dir == "" {
				continue
			}
			if strings.Contains(cwd, dir) {
				return true, fmt.Sprintf("cursor reading %s directory", dir)
			}
			if strings.Contains(cmd, dir) {
				return true, fmt.Sprintf("cursor command accessing %s", dir)
			}
		}
	}

	return false, ""
}
