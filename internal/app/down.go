// Where: internal/app/down.go
// What: Down command handler.
// Why: Stop and remove the service container; absence is not a failure.
package app

import (
	"context"
	"io"

	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/ui"
)

func runDown(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)

	removed, err := docker.RemoveIfExists(context.Background(), deps.Docker, cfg.Container)
	if err != nil {
		return exitWithError(out, err)
	}

	if err := deps.States.Remove(); err != nil {
		console.Warn("could not clear run state: " + err.Error())
	}

	if removed {
		console.Success("container " + cfg.Container + " stopped and removed")
	} else {
		console.Info("no container named " + cfg.Container)
	}
	return 0
}
