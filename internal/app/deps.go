// Where: internal/app/deps.go
// What: Injected dependencies for CLI command execution.
// Why: Enable swapping engine, credentials, and clock in tests.
package app

import (
	"io"
	"time"

	"github.com/elastic-mcp/emcp/internal/creds"
	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/state"
)

// Dependencies holds all injected dependencies required for CLI command
// execution.
type Dependencies struct {
	WorkDir string
	Out     io.Writer
	Docker  docker.Client
	Runner  docker.CommandRunner
	Minter  creds.Minter
	States  stateStore
	Now     func() time.Time
}

// stateStore is the subset of the run-state store the commands use.
type stateStore interface {
	Load() (state.RunState, error)
	Save(state.RunState) error
	Remove() error
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
