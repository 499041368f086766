// Where: internal/app/status.go
// What: Status command handler.
// Why: One place to see resolved config, credentials, and container state.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/elastic-mcp/emcp/internal/creds"
	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/ui"
)

func runStatus(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)

	console.Header("📦", "Project")
	console.Item("Image", cfg.Image)
	console.Item("Container", cfg.Container)
	console.Item("Port", fmt.Sprintf("%d -> %d", cfg.HostPort, cfg.ContainerPort))
	if cfg.IndexURL != "" {
		console.Item("Package index", cfg.IndexURL)
	}
	console.Blank()

	console.Header("🔑", "Credentials")
	resolution := creds.Resolve(cfg.CredentialsFile)
	console.Item("Source", resolution.Source)
	console.Item("Path", resolution.Path)
	if resolution.Exists {
		if key, err := creds.ReadKeyFile(resolution.Path); err == nil {
			console.Item("Type", key.Type)
			if key.ClientEmail != "" {
				console.Item("Account", key.ClientEmail)
			}
			if project := key.EffectiveProject(); project != "" {
				console.Item("Project", project)
			}
		}
	} else {
		console.Warn("credentials file not found (container would start in degraded mode)")
	}
	console.Blank()

	ctx := context.Background()

	console.Header("🐳", "Container")
	if raw, err := deps.Runner.RunOutput(ctx, "", "docker", "version", "--format", "{{.Server.Version}}"); err == nil {
		if version := strings.TrimSpace(string(raw)); version != "" {
			console.Item("Engine", version)
		}
	}
	ctr, err := docker.FindByName(ctx, deps.Docker, cfg.Container)
	if err != nil {
		return exitWithError(out, err)
	}
	if ctr == nil {
		console.ItemPlain("not created")
	} else {
		console.Item("State", ctr.State)
		console.Item("Status", ctr.Status)
		console.Item("ID", shortID(ctr.ID))
	}

	if last, err := deps.States.Load(); err == nil && last.ContainerID != "" {
		console.Item("Last started", last.StartedAt)
		console.Item("Auth method", last.AuthMethod)
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
