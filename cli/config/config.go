// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// BaseURL overrides the API base URL. Empty uses the SDK default.
	BaseURL string `yaml:"base_url,omitempty"`

	// DefaultModel is the model used by chat when --model is not given.
	DefaultModel string `yaml:"default_model,omitempty"`

	// DefaultCollection is the collection used by chat when --collection
	// is not given.
	DefaultCollection string `yaml:"default_collection,omitempty"`

	// PollInterval is the status poll interval in seconds for --wait.
	PollInterval int `yaml:"poll_interval,omitempty"`

	// WaitTimeout is the overall --wait timeout in seconds.
	WaitTimeout int `yaml:"wait_timeout,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.cloudglue/config.yaml
// - Windows: %USERPROFILE%\.cloudglue\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".cloudglue", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path, creating the parent directory if
// needed. The file is user-readable only since it may name private
// collections.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
