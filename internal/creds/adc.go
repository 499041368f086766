// Where: internal/creds/adc.go
// What: Application default credentials file resolution.
// Why: Find the host credentials file the way the gcloud SDK would.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/elastic-mcp/emcp/internal/constants"
)

// Source identifies where a credentials path came from.
type Source string

const (
	SourceConfig    Source = "project config"
	SourceEnv       Source = "GOOGLE_APPLICATION_CREDENTIALS"
	SourceWellKnown Source = "gcloud default location"
)

// Resolution is the outcome of credential file discovery.
type Resolution struct {
	Path   string
	Source Source
	Exists bool
}

// Resolve locates the credentials file. Precedence: explicit config path,
// GOOGLE_APPLICATION_CREDENTIALS, then the gcloud well-known ADC location.
func Resolve(configPath string) Resolution {
	if path := strings.TrimSpace(configPath); path != "" {
		return resolution(path, SourceConfig)
	}
	if path := strings.TrimSpace(os.Getenv(constants.EnvGoogleCredentials)); path != "" {
		return resolution(path, SourceEnv)
	}
	return resolution(wellKnownPath(), SourceWellKnown)
}

func resolution(path string, source Source) Resolution {
	info, err := os.Stat(path)
	exists := err == nil && !info.IsDir()
	return Resolution{Path: path, Source: source, Exists: exists}
}

// wellKnownPath returns the per-OS gcloud ADC file location.
func wellKnownPath() string {
	const leaf = "application_default_credentials.json"
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv(constants.EnvAppData), "gcloud", leaf)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gcloud", leaf)
}

// KeyFile holds the fields of a credentials JSON file we care about for
// display and project-id defaulting. Everything else stays opaque.
type KeyFile struct {
	Type           string `json:"type"`
	ClientEmail    string `json:"client_email"`
	ProjectID      string `json:"project_id"`
	QuotaProjectID string `json:"quota_project_id"`
}

// ReadKeyFile parses the resolved credentials file.
func ReadKeyFile(path string) (KeyFile, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return KeyFile{}, fmt.Errorf("read credentials file %s: %w", path, err)
	}
	var key KeyFile
	if err := json.Unmarshal(payload, &key); err != nil {
		return KeyFile{}, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	return key, nil
}

// EffectiveProject returns the best project id for the key file.
func (k KeyFile) EffectiveProject() string {
	if k.ProjectID != "" {
		return k.ProjectID
	}
	return k.QuotaProjectID
}
