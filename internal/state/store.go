// Where: internal/state/store.go
// What: Run-state persistence for the managed container.
// Why: Remember what was last started so status/down work across invocations.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/elastic-mcp/emcp/internal/config"
)

// RunState records the container started by the most recent `up`.
type RunState struct {
	ContainerID string `json:"container_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	AuthMethod  string `json:"auth_method"`
	HostPort    int    `json:"host_port"`
	StartedAt   string `json:"started_at"` // RFC 3339
}

// Store persists RunState on the local filesystem.
type Store struct{}

// NewStore creates a filesystem-backed run-state store.
func NewStore() Store {
	return Store{}
}

// Load returns the recorded state, or the zero state when none exists.
func (Store) Load() (RunState, error) {
	path, err := statePath()
	if err != nil {
		return RunState{}, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RunState{}, nil
		}
		return RunState{}, err
	}
	var loaded RunState
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return RunState{}, err
	}
	return loaded, nil
}

// Save writes the state, creating the state directory if needed.
func (Store) Save(rs RunState) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Remove deletes the recorded state. Absence is not an error.
func (Store) Remove() error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// statePath keeps state.json beside the global config so directory
// overrides move both.
func statePath() (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "state.json"), nil
}
