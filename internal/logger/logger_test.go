package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/averlon/unihook/internal/constants"
)

func TestInit(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Init(Options{
		Verbose: true,
		Output:  &buf,
	})

	Debug("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestInitOnlyOnce(t *testing.T) {
	defer Reset()

	var buf1, buf2 bytes.Buffer
	Init(Options{Verbose: true, Output: &buf1})
	Init(Options{Verbose: true, Output: &buf2}) // Should be ignored

	Debug("test message")

	if buf1.Len() == 0 {
		t.Error("expected first buffer to have output")
	}
	if buf2.Len() != 0 {
		t.Error("expected second buffer to be empty (Init should only work once)")
	}
}

func TestDebugEnv(t *testing.T) {
	defer Reset()
	os.Setenv(constants.EnvDebug, "1")
	defer os.Unsetenv(constants.EnvDebug)

	var buf bytes.Buffer
	Init(Options{Output: &buf})

	if !IsVerbose() {
		t.Errorf("%s=1 did not enable debug tracing", constants.EnvDebug)
	}
	Debug("from env")
	if !strings.Contains(buf.String(), "from env") {
		t.Errorf("debug message not emitted with %s=1", constants.EnvDebug)
	}
}

func TestLogFileEnv(t *testing.T) {
	defer Reset()

	path := t.TempDir() + "/trace.log"
	os.Setenv(constants.EnvDebug, "1")
	os.Setenv(constants.EnvLogFile, path)
	defer os.Unsetenv(constants.EnvDebug)
	defer os.Unsetenv(constants.EnvLogFile)

	Init(Options{})
	Debug("redirected trace")
	Reset()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("trace file not written: %v", err)
	}
	if !strings.Contains(string(data), "redirected trace") {
		t.Errorf("trace file content = %s", data)
	}
}

func TestNonVerboseMode(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Init(Options{
		Verbose: false, // Only error level
		Output:  &buf,
	})

	Debug("debug message")
	Info("info message")
	Warn("warn message")

	if buf.Len() != 0 {
		t.Errorf("expected no output for debug/info/warn in non-verbose mode, got: %s", buf.String())
	}

	Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("expected error message to be logged even in non-verbose mode")
	}
}

func TestLogBeforeInit(t *testing.T) {
	defer Reset()

	// These should not panic even before Init
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestWith(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Init(Options{
		Verbose: true,
		Output:  &buf,
	})

	childLogger := With("component", "test")
	childLogger.Debug("child message")

	output := buf.String()
	if !strings.Contains(output, "component=test") {
		t.Errorf("expected output to contain 'component=test', got: %s", output)
	}
}
