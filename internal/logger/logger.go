// Package logger provides structured logging for unihook using log/slog.
//
// Debug tracing is enabled either programmatically (Options.Verbose) or via
// the UNIHOOK_DEBUG=1 environment variable. UNIHOOK_LOG_FILE redirects trace
// output to a file instead of stderr, which keeps traces out of the hook
// protocol streams.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/averlon/unihook/internal/constants"
)

var (
	log     *slog.Logger
	once    sync.Once
	verbose bool
	logFile *os.File
)

// Options configures the logger.
type Options struct {
	// Verbose enables debug-level logging
	Verbose bool
	// Output is the writer for log output (defaults to os.Stderr,
	// or the UNIHOOK_LOG_FILE path when set)
	Output io.Writer
	// JSON enables JSON-formatted output
	JSON bool
}

// Init initializes the global logger with the given options.
// It is safe to call multiple times; only the first call takes effect.
func Init(opts Options) {
	once.Do(func() {
		verbose = opts.Verbose || os.Getenv(constants.EnvDebug) == "1"

		output := opts.Output
		if output == nil {
			output = os.Stderr
			if path := os.Getenv(constants.EnvLogFile); path != "" {
				f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
				if err == nil {
					logFile = f
					output = f
				}
			}
		}

		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}

		handlerOpts := &slog.HandlerOptions{Level: level}

		var handler slog.Handler
		if opts.JSON {
			handler = slog.NewJSONHandler(output, handlerOpts)
		} else {
			handler = slog.NewTextHandler(output, handlerOpts)
		}

		log = slog.New(handler)
	})
}

// Reset resets the logger for testing purposes.
// This should only be used in tests.
func Reset() {
	if logFile != nil {
		logFile.Close()
	}
	once = sync.Once{}
	log = nil
	verbose = false
	logFile = nil
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

// Info logs at info level.
func Info(msg string, args ...any) {
	if log != nil {
		log.Info(msg, args...)
	}
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	if log != nil {
		log.Warn(msg, args...)
	}
}

// Error logs at error level.
func Error(msg string, args ...any) {
	if log != nil {
		log.Error(msg, args...)
	}
}

// With returns a logger with additional context attributes.
func With(args ...any) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log.With(args...)
}
