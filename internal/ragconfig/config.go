// Package ragconfig holds the ambient configuration, logging, and API-key
// storage shared by every package in the module: a couple of process-wide
// verbosity flags, a DebugLog helper gated on them, and a YAML-backed env
// file holding provider credentials.
package ragconfig

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Verbose and Debug are set once at CLI startup (package cmd) and read by
// every package that wants to emit diagnostic logging.
var (
	Verbose bool
	Debug   bool
)

// DebugLog prints format-style debug output, but only when Debug is set.
// Every package that wants verbose tracing uses this instead of ad-hoc log
// calls.
func DebugLog(format string, args ...interface{}) {
	if Debug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// VerboseLog prints progress-level output when either Verbose or Debug is
// set. Debug implies Verbose.
func VerboseLog(format string, args ...interface{}) {
	if Verbose || Debug {
		log.Printf(format, args...)
	}
}

// ProviderConfig holds the credential for one LLM provider.
type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
}

// EnvConfig is the on-disk shape of ~/.ragtime/config.yaml: one entry per
// configured provider, plus a default model name. DefaultModel is stored and
// shown by the configure command; pipeline runs do not read it, and a stage
// with no llms configured is rejected rather than falling back to it.
type EnvConfig struct {
	Providers    map[string]ProviderConfig `yaml:"providers"`
	DefaultModel string                    `yaml:"default_model,omitempty"`
}

// GetEnvPath returns the configuration file path, honoring RAGTIME_ENV if
// set and defaulting to ~/.ragtime/config.yaml otherwise.
func GetEnvPath() string {
	if p := os.Getenv("RAGTIME_ENV"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ragtime/config.yaml"
	}
	return filepath.Join(home, ".ragtime", "config.yaml")
}

// LoadEnvConfig reads the env file at path, returning an empty EnvConfig if
// the file does not yet exist.
func LoadEnvConfig(path string) (*EnvConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &EnvConfig{Providers: map[string]ProviderConfig{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ragconfig: read %q: %w", path, err)
	}
	var cfg EnvConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ragconfig: parse %q: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = map[string]ProviderConfig{}
	}
	return &cfg, nil
}

// SaveEnvConfig writes cfg to path as YAML, creating the parent directory if
// needed.
func SaveEnvConfig(path string, cfg *EnvConfig) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("ragconfig: mkdir %q: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("ragconfig: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("ragconfig: write %q: %w", path, err)
	}
	return nil
}

// APIKey looks up the API key configured for provider, checking the
// environment variable named envVar first so CI and local runs never need
// the config file.
func (c *EnvConfig) APIKey(provider, envVar string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if c == nil {
		return ""
	}
	return c.Providers[provider].APIKey
}
