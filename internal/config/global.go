// Where: internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.emcp/config.yaml consistently.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/elastic-mcp/emcp/internal/constants"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents the ~/.emcp/config.yaml global configuration.
// It tracks the last-used project directory and sticky command defaults.
type GlobalConfig struct {
	Version     int    `yaml:"version"`
	LastProject string `yaml:"last_project,omitempty"`
	FollowLogs  *bool  `yaml:"follow_logs,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// HomeDir returns the base directory for CLI data (global config and run
// state). EMCP_CONFIG_HOME wins, then EMCP_HOME, then ~/.emcp.
func HomeDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(constants.EnvConfigHome)); override != "" {
		return override, nil
	}
	if override := strings.TrimSpace(os.Getenv(constants.EnvHome)); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".emcp"), nil
}

// GlobalConfigPath returns the path to the global config file.
// EMCP_CONFIG_PATH pins the file itself; otherwise the file lives under
// HomeDir.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(constants.EnvConfigPath)); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return err
	}
	return nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}
