// Package config handles configuration loading and parsing for unihook.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/averlon/unihook/internal/constants"
	"github.com/averlon/unihook/internal/logger"
	"github.com/averlon/unihook/internal/proctree"
)

//go:embed config.toml
var defaultConfig []byte

// Config holds the runtime settings for the hook pipeline.
type Config struct {
	// MaxDepth bounds the ancestry walk
	MaxDepth int
	// ExtraSignatures are appended after the built-in signature table
	ExtraSignatures []proctree.Signature
	// NoiseDirs are config-directory substrings that mark Cursor events as noise
	NoiseDirs []string
	// HandlerTimeout bounds external handler invocations
	HandlerTimeout time.Duration
}

// rawConfig mirrors the TOML layout.
type rawConfig struct {
	Detect struct {
		MaxDepth   int `toml:"max_depth"`
		Signatures []struct {
			Tool       string   `toml:"tool"`
			Substrings []string `toml:"substrings"`
		} `toml:"signatures"`
	} `toml:"detect"`
	Filter struct {
		NoiseDirs []string `toml:"noise_dirs"`
	} `toml:"filter"`
	Handler struct {
		TimeoutSeconds int `toml:"timeout_seconds"`
	} `toml:"handler"`
}

var (
	// globalConfig is the loaded configuration
	globalConfig *Config
	// configInitialized tracks whether config has been loaded
	configInitialized bool
	// initError records the failure that forced an embedded-defaults fallback
	initError error
)

// GetConfigDir returns the config directory path.
// Uses UNIHOOK_CONFIG env var if set, otherwise ~/.config/unihook
func GetConfigDir() (string, error) {
	if dir := os.Getenv(constants.EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.XDGConfigSubdir, constants.AppName), nil
}

// GetConfigPath returns the path of the active config file, or "" when the
// config directory cannot be determined.
func GetConfigPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, constants.ConfigFileName)
}

// EnsureConfigFiles creates the config directory and writes the default
// config file if it doesn't exist.
func EnsureConfigFiles(configDir string) error {
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, defaultConfig, constants.FileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", constants.ConfigFileName, err)
		}
	}

	return nil
}

// LoadConfig parses TOML data into a Config.
func LoadConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := &Config{
		MaxDepth:       raw.Detect.MaxDepth,
		NoiseDirs:      raw.Filter.NoiseDirs,
		HandlerTimeout: time.Duration(raw.Handler.TimeoutSeconds) * time.Second,
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = proctree.DefaultMaxDepth
	}
	if cfg.NoiseDirs == nil {
		cfg.NoiseDirs = []string{".claude"}
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 30 * time.Second
	}
	for _, sig := range raw.Detect.Signatures {
		if sig.Tool == "" || len(sig.Substrings) == 0 {
			continue
		}
		cfg.ExtraSignatures = append(cfg.ExtraSignatures, proctree.Signature{
			Tool:       sig.Tool,
			Substrings: sig.Substrings,
		})
	}

	return cfg, nil
}

// loadEmbeddedDefaults loads the embedded default config file.
func loadEmbeddedDefaults() *Config {
	cfg, _ := LoadConfig(defaultConfig)
	return cfg
}

// Init loads configuration from files, creating defaults if necessary.
// If loading fails, it falls back to embedded defaults.
func Init() error {
	if configInitialized {
		return initError
	}

	configDir, err := GetConfigDir()
	if err != nil {
		logger.Debug("failed to get config dir, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return err
	}

	if err := EnsureConfigFiles(configDir); err != nil {
		logger.Debug("failed to ensure config files, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return err
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)
	configData, err := os.ReadFile(configPath)
	if err != nil {
		logger.Debug("failed to read config file, using embedded defaults", "path", configPath, "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = fmt.Errorf("failed to read %s: %w", constants.ConfigFileName, err)
		return initError
	}

	globalConfig, err = LoadConfig(configData)
	if err != nil {
		logger.Debug("failed to parse config, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = fmt.Errorf("failed to load config: %w", err)
		return initError
	}

	logger.Debug("config loaded successfully",
		"path", configPath,
		"max_depth", globalConfig.MaxDepth,
		"noise_dirs", globalConfig.NoiseDirs,
		"extra_signatures", len(globalConfig.ExtraSignatures))
	configInitialized = true
	initError = nil
	return nil
}

// InitError returns the error from the last Init, if any.
func InitError() error {
	return initError
}

// Get returns the current configuration.
// If Init has not been called, it initializes with defaults.
func Get() *Config {
	if !configInitialized {
		Init()
	}
	return globalConfig
}

// Reset resets the configuration state. Used for testing.
func Reset() {
	configInitialized = false
	globalConfig = nil
	initError = nil
}

// GetDefaultConfig returns the embedded default configuration.
func GetDefaultConfig() []byte {
	return defaultConfig
}
