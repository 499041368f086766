// Where: internal/config/project_test.go
// What: Tests for project config loading and validation.
// Why: Ensure defaults, round-trips, and schema rejection behave as documented.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadProjectDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultProject()) {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadProjectExplicitMissingIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	if _, err := LoadProject(path); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	cfg := Project{
		Version:         1,
		Image:           "elastic-mcp:dev",
		Container:       "elastic-mcp-dev",
		Dockerfile:      "Dockerfile",
		Context:         ".",
		HostPort:        8000,
		ContainerPort:   8000,
		GCPProject:      "acme-search-dev",
		CredentialsFile: "/home/dev/key.json",
		IndexURL:        "https://europe-python.pkg.dev/acme/pypi/simple/",
		BuildArgs:       map[string]string{"PY_VERSION": "3.12"},
		Env:             map[string]string{"LOG_LEVEL": "debug"},
	}

	if err := SaveProject(path, cfg); err != nil {
		t.Fatalf("save project: %v", err)
	}
	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("config mismatch: expected %#v, got %#v", cfg, loaded)
	}
}

func TestLoadProjectPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	payload := "version: 1\nimage: custom:tag\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if cfg.Image != "custom:tag" {
		t.Fatalf("unexpected image: %s", cfg.Image)
	}
	if cfg.Container != "elastic-mcp" || cfg.HostPort != 8000 {
		t.Fatalf("defaults not preserved: %#v", cfg)
	}
}

func TestLoadProjectRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	payload := "version: 1\nimmage: typo:tag\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadProject(path)
	if err == nil {
		t.Fatal("expected schema error for unknown field")
	}
	if !strings.Contains(err.Error(), "invalid project config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadProjectRejectsBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	payload := "version: 1\nhost_port: 70000\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadProject(path); err == nil {
		t.Fatal("expected schema error for out-of-range port")
	}
}
