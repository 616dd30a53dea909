package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(GetDefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfig(defaults) returned error: %v", err)
	}

	if cfg.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", cfg.MaxDepth)
	}
	if len(cfg.NoiseDirs) != 1 || cfg.NoiseDirs[0] != ".claude" {
		t.Errorf("NoiseDirs = %v, want [.claude]", cfg.NoiseDirs)
	}
	if cfg.HandlerTimeout != 30*time.Second {
		t.Errorf("HandlerTimeout = %v, want 30s", cfg.HandlerTimeout)
	}
	if len(cfg.ExtraSignatures) != 0 {
		t.Errorf("ExtraSignatures = %v, want none", cfg.ExtraSignatures)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	data := []byte(`
[detect]
max_depth = 3

[[detect.signatures]]
tool = "aider"
substrings = ["aider"]

[filter]
noise_dirs = [".claude", ".gemini"]

[handler]
timeout_seconds = 5
`)
	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.MaxDepth)
	}
	if len(cfg.NoiseDirs) != 2 {
		t.Errorf("NoiseDirs = %v, want two entries", cfg.NoiseDirs)
	}
	if cfg.HandlerTimeout != 5*time.Second {
		t.Errorf("HandlerTimeout = %v, want 5s", cfg.HandlerTimeout)
	}
	if len(cfg.ExtraSignatures) != 1 || cfg.ExtraSignatures[0].Tool != "aider" {
		t.Errorf("ExtraSignatures = %v, want aider", cfg.ExtraSignatures)
	}
}

func TestLoadConfigEmptyUsesFallbacks(t *testing.T) {
	cfg, err := LoadConfig([]byte(""))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want default 8", cfg.MaxDepth)
	}
	if len(cfg.NoiseDirs) != 1 || cfg.NoiseDirs[0] != ".claude" {
		t.Errorf("NoiseDirs = %v, want [.claude]", cfg.NoiseDirs)
	}
	if cfg.HandlerTimeout != 30*time.Second {
		t.Errorf("HandlerTimeout = %v, want default 30s", cfg.HandlerTimeout)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	if _, err := LoadConfig([]byte("not [valid toml")); err == nil {
		t.Error("LoadConfig accepted invalid TOML")
	}
}
