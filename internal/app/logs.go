// Where: internal/app/logs.go
// What: Logs command handler.
// Why: Stream or tail the service container's output.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic-mcp/emcp/internal/docker"
)

func runLogs(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx := context.Background()

	ctr, err := docker.FindByName(ctx, deps.Docker, cfg.Container)
	if err != nil {
		return exitWithError(out, err)
	}
	if ctr == nil {
		return exitWithError(out, fmt.Errorf("no container named %s; run `emcp up` first", cfg.Container))
	}

	err = docker.StreamLogs(ctx, deps.Docker, ctr.ID, out, docker.LogsOptions{
		Follow:     cli.Logs.Follow,
		Tail:       cli.Logs.Tail,
		Timestamps: cli.Logs.Timestamps,
	})
	if err != nil {
		return exitWithError(out, err)
	}
	return 0
}
