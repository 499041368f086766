// Where: internal/app/build.go
// What: Build command handler.
// Why: Mint the token and drive the image build.
package app

import (
	"context"
	"io"
	"sort"

	"github.com/elastic-mcp/emcp/internal/config"
	"github.com/elastic-mcp/emcp/internal/creds"
	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/ui"
)

func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	if err := buildImage(context.Background(), cli, deps, cfg, out); err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Success("image built: " + cfg.Image)
	return 0
}

// buildImage mints a fresh token and runs the engine build. Shared by
// `build` and `up --build`. The token is minted immediately before the build
// and never reused across invocations.
func buildImage(ctx context.Context, cli CLI, deps Dependencies, cfg config.Project, out io.Writer) error {
	console := ui.New(out)

	resolution := creds.Resolve(cfg.CredentialsFile)
	console.Header("🔑", "Credentials")
	console.Item("Source", resolution.Source)
	console.Item("Path", resolution.Path)

	token, err := deps.Minter.Mint(ctx, resolution)
	if err != nil {
		return err
	}
	console.Item("Token", creds.Mask(token.Value))
	if !token.Expiry.IsZero() {
		console.Item("Token expires", token.Expiry.Format("15:04:05"))
	}
	console.Blank()

	return docker.BuildImage(ctx, deps.Runner, out, docker.BuildOptions{
		Image:       cfg.Image,
		Dockerfile:  cfg.Dockerfile,
		ContextPath: cfg.Context,
		Token:       token.Value,
		BuildArgs:   sortedArgs(cfg.BuildArgs),
		NoCache:     cli.Build.NoCache,
		Pull:        cli.Build.Pull,
		DryRun:      cli.Build.DryRun,
	})
}

// sortedArgs flattens a build-arg map into deterministic order.
func sortedArgs(args map[string]string) [][2]string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, [2]string{key, args[key]})
	}
	return out
}
