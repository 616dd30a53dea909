// Package constants defines shared constants used across the unihook codebase.
package constants

import "os"

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// Environment variables
const (
	EnvConfigDir = "UNIHOOK_CONFIG"
	EnvDebug     = "UNIHOOK_DEBUG"
	EnvLogFile   = "UNIHOOK_LOG_FILE"
)

// Application paths
const (
	AppName         = "unihook"
	XDGConfigSubdir = ".config"
	ConfigFileName  = "config.toml"
)

// Hook defaults
const (
	DefaultSource    = "claude"
	DefaultEventType = "PreToolUse"
)
