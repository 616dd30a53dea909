// Package audit provides a per-invocation decision log for unihook.
//
// Entries are JSON lines appended to a local file. Logging is diagnostics
// only: failures are swallowed and never influence the emitted verdict.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/averlon/unihook/internal/constants"
	"github.com/averlon/unihook/internal/logger"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// maxLogSize triggers rotation; the rotated file is kept gzip-compressed
// next to the live log.
const maxLogSize = 5 << 20

// Entry represents a single audit log entry.
type Entry struct {
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"`
	DurationMs    float64 `json:"duration_ms"`
	ClaimedSource string  `json:"claimed_source"`
	Source        string  `json:"source"`
	EventType     string  `json:"event_type"`
	ToolName      string  `json:"tool_name,omitempty"`
	Cwd           string  `json:"cwd,omitempty"`
	Dropped       bool    `json:"dropped"`
	DropReason    string  `json:"drop_reason,omitempty"`
	Handler       string  `json:"handler,omitempty"`
	Output        string  `json:"output"`
}

var (
	auditFile *os.File
	auditPath string
	mu        sync.Mutex
	enabled   bool
)

// DefaultLogPath returns the default audit log path
// (~/.local/share/unihook/audit.log).
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", constants.AppName, "audit.log"), nil
}

// Init initializes the audit log. If path is empty, uses the default path.
// Pass disable=true to turn audit logging off.
func Init(path string, disable bool) error {
	mu.Lock()
	defer mu.Unlock()

	if disable {
		enabled = false
		return nil
	}

	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			logger.Debug("failed to get default audit log path", "error", err)
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirMode); err != nil {
		logger.Debug("failed to create audit log directory", "error", err)
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to open audit log file", "error", err)
		return err
	}

	auditFile = f
	auditPath = path
	enabled = true
	logger.Debug("audit logging initialized", "path", path)
	return nil
}

// Close closes the audit log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if auditFile != nil {
		err := auditFile.Close()
		auditFile = nil
		enabled = false
		return err
	}
	return nil
}

// Log writes an entry to the audit log, assigning it an id and timestamp.
// If audit logging is not initialized or disabled, this is a no-op.
func Log(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || auditFile == nil {
		return nil
	}

	rotateIfNeeded()

	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Debug("failed to marshal audit entry", "error", err)
		return err
	}

	if _, err := auditFile.Write(append(data, '\n')); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
		return err
	}

	return nil
}

// rotateIfNeeded gzips the live log into audit.log.gz and starts a fresh
// file once the live log exceeds maxLogSize. Called with mu held.
func rotateIfNeeded() {
	info, err := auditFile.Stat()
	if err != nil || info.Size() < maxLogSize {
		return
	}

	if err := compressTo(auditPath, auditPath+".gz"); err != nil {
		logger.Debug("audit log rotation failed", "error", err)
		return
	}

	auditFile.Close()
	f, err := os.OpenFile(auditPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to reopen audit log after rotation", "error", err)
		auditFile = nil
		enabled = false
		return
	}
	auditFile = f
	logger.Debug("audit log rotated", "path", auditPath+".gz")
}

func compressTo(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		return err
	}
	return gw.Close()
}

// IsEnabled returns whether audit logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Reset resets the audit state. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = nil
	auditPath = ""
	enabled = false
}
