// Where: cmd/emcp/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/elastic-mcp/emcp/internal/app"
	"github.com/elastic-mcp/emcp/internal/creds"
	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/state"
)

var (
	getwd           = os.Getwd
	newDockerClient = docker.NewClient
)

// buildDependencies constructs all runtime dependencies required by the CLI.
// Returns the dependencies, a closer for cleanup, and any initialization error.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	workDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	client, err := newDockerClient()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	deps := app.Dependencies{
		WorkDir: workDir,
		Out:     os.Stdout,
		Docker:  client,
		Runner:  docker.ExecRunner{},
		Minter:  creds.NewMinter(),
		States:  state.NewStore(),
	}

	return deps, asCloser(client), nil
}

// asCloser attempts to cast the Docker client to an io.Closer.
// Returns nil if the client does not implement the Closer interface.
func asCloser(client docker.Client) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
