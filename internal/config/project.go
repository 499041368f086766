// Where: internal/config/project.go
// What: Project config (emcp.yaml) load/save helpers.
// Why: One place for the image/container/credential settings the commands share.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project config file looked up in the working directory.
const DefaultFileName = "emcp.yaml"

// Project represents the per-project emcp.yaml configuration.
type Project struct {
	Version         int               `yaml:"version"`
	Image           string            `yaml:"image,omitempty"`
	Container       string            `yaml:"container,omitempty"`
	Dockerfile      string            `yaml:"dockerfile,omitempty"`
	Context         string            `yaml:"context,omitempty"`
	HostPort        int               `yaml:"host_port,omitempty"`
	ContainerPort   int               `yaml:"container_port,omitempty"`
	GCPProject      string            `yaml:"gcp_project,omitempty"`
	CredentialsFile string            `yaml:"credentials_file,omitempty"`
	IndexURL        string            `yaml:"index_url,omitempty"`
	BuildArgs       map[string]string `yaml:"build_args,omitempty"`
	Env             map[string]string `yaml:"env,omitempty"`
}

// DefaultProject returns the configuration used when no emcp.yaml exists.
// The names mirror the hardcoded image/container names of the original scripts.
func DefaultProject() Project {
	return Project{
		Version:       1,
		Image:         "elastic-mcp:latest",
		Container:     "elastic-mcp",
		Dockerfile:    "Dockerfile",
		Context:       ".",
		HostPort:      8000,
		ContainerPort: 8000,
	}
}

// LoadProject reads and validates the project configuration at path.
// When the file does not exist and path is the default lookup, the defaults
// are returned instead of an error.
func LoadProject(path string) (Project, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && filepath.Base(path) == DefaultFileName {
			return DefaultProject(), nil
		}
		return Project{}, fmt.Errorf("read project config %s: %w", path, err)
	}

	if err := validateProject(payload); err != nil {
		return Project{}, fmt.Errorf("invalid project config %s: %w", path, err)
	}

	cfg := DefaultProject()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Project{}, fmt.Errorf("parse project config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveProject writes a Project to the specified path.
func SaveProject(path string, cfg Project) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, payload, 0o644)
}
