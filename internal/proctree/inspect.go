// Package proctree recovers which AI coding assistant actually triggered a
// hook invocation by inspecting the process tree.
//
// Multiple assistants read shared hook configuration files, so the claimed
// source parameter is unreliable: Cursor and OpenCode both trigger hooks
// installed in ~/.claude/settings.json. The only dependable signal is the
// ancestry of the hook process itself.
package proctree

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// lookupTimeout bounds each subprocess-based process lookup so a bounded
// walk has a bounded worst-case wall-clock cost.
const lookupTimeout = time.Second

// Inspector reads process metadata from the OS. Lookups never fail loudly:
// permission errors, vanished processes and unsupported platforms are all
// reported as absence (empty command line, no parent).
type Inspector interface {
	// Cmdline returns the command line of pid, or "" if unavailable.
	Cmdline(pid int) string
	// ParentPID returns the parent of pid. The second return is false when
	// there is no usable parent (lookup failed or pid is at the init/kernel
	// boundary, pid <= 1).
	ParentPID(pid int) (int, bool)
}

// sysInspector reads /proc where available and falls back to the ps utility.
type sysInspector struct {
	timeout time.Duration
}

// NewInspector returns an Inspector backed by the live process table.
func NewInspector() Inspector {
	return &sysInspector{timeout: lookupTimeout}
}

func (s *sysInspector) Cmdline(pid int) string {
	// /proc/<pid>/cmdline uses NUL bytes as argument separators
	if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid)); err == nil {
		return strings.TrimSpace(string(bytes.ReplaceAll(data, []byte{0}, []byte{' '})))
	}

	if runtime.GOOS == "windows" {
		return ""
	}

	out, err := s.runPS("-p", strconv.Itoa(pid), "-o", "command=")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func (s *sysInspector) ParentPID(pid int) (int, bool) {
	if ppid, ok := parentFromProcStat(pid); ok {
		if ppid <= 1 {
			return 0, false
		}
		return ppid, true
	}

	if runtime.GOOS == "windows" {
		return 0, false
	}

	out, err := s.runPS("-p", strconv.Itoa(pid), "-o", "ppid=")
	if err != nil {
		return 0, false
	}
	ppid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || ppid <= 1 {
		return 0, false
	}
	return ppid, true
}

// parentFromProcStat parses the ppid out of /proc/<pid>/stat. The format is
// "pid (comm) state ppid ..." where comm may contain spaces and parentheses,
// so fields are split after the last ')'.
func parentFromProcStat(pid int) (int, bool) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, false
	}
	stat := string(data)
	lastParen := strings.LastIndexByte(stat, ')')
	if lastParen < 0 {
		return 0, false
	}
	fields := strings.Fields(stat[lastParen+1:])
	if len(fields) < 2 {
		return 0, false
	}
	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return ppid, true
}

func (s *sysInspector) runPS(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ps", args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
