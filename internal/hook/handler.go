package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/averlon/unihook/internal/logger"
	"mvdan.cc/sh/v3/shell"
)

// DefaultHandlerTimeout bounds external handler invocations.
const DefaultHandlerTimeout = 30 * time.Second

// RunHandler forwards a normalized event to an external decision-making
// program and relays its verdict. The handler receives the event as JSON on
// stdin and must print a verdict as JSON on stdout within the timeout.
//
// Every failure mode fails open: a broken or slow policy handler must never
// block the wrapped tool. Only a zero-exit, parseable response overrides the
// default allow.
func RunHandler(command string, event Event, timeout time.Duration) Verdict {
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}

	argv, err := shell.Fields(command, nil)
	if err != nil || len(argv) == 0 {
		logger.Debug("unusable handler command", "command", command, "error", err)
		return Allow()
	}

	input, err := json.Marshal(event)
	if err != nil {
		logger.Debug("failed to serialize event for handler", "error", err)
		return Allow()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Debug("handler timeout", "command", argv[0], "timeout", timeout)
		} else {
			logger.Debug("handler error", "command", argv[0], "error", err,
				"stderr", strings.TrimSpace(stderr.String()))
		}
		return Allow()
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		logger.Debug("handler produced no output", "command", argv[0])
		return Allow()
	}

	verdict, err := ParseVerdict(out)
	if err != nil {
		logger.Debug("handler output not a valid verdict", "command", argv[0], "error", err)
		return Allow()
	}

	return verdict
}
