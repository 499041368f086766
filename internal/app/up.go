// Where: internal/app/up.go
// What: Up command handler.
// Why: Replace any previous container and start the service with credentials.
package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/elastic-mcp/emcp/internal/config"
	"github.com/elastic-mcp/emcp/internal/constants"
	"github.com/elastic-mcp/emcp/internal/creds"
	"github.com/elastic-mcp/emcp/internal/docker"
	"github.com/elastic-mcp/emcp/internal/state"
	"github.com/elastic-mcp/emcp/internal/ui"
)

func runUp(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx := context.Background()
	console := ui.New(out)

	if cli.Up.Build {
		if err := buildImage(ctx, cli, deps, cfg, out); err != nil {
			return exitWithError(out, err)
		}
		console.Blank()
	}

	// A same-named container never blocks a new up; replacement is
	// unconditional.
	removed, err := docker.RemoveIfExists(ctx, deps.Docker, cfg.Container)
	if err != nil {
		return exitWithError(out, err)
	}
	if removed {
		console.Info("replaced existing container " + cfg.Container)
	}

	resolution := creds.Resolve(cfg.CredentialsFile)
	spec := runSpec(cfg, resolution, console)

	id, err := docker.CreateAndStart(ctx, deps.Docker, spec)
	if err != nil {
		return exitWithError(out, err)
	}

	if err := deps.States.Save(state.RunState{
		ContainerID: id,
		Name:        cfg.Container,
		Image:       cfg.Image,
		AuthMethod:  authMethod(resolution),
		HostPort:    cfg.HostPort,
		StartedAt:   deps.now().Format(time.RFC3339),
	}); err != nil {
		console.Warn(fmt.Sprintf("could not record run state: %v", err))
	}

	console.Success(fmt.Sprintf("container %s started on http://localhost:%d", cfg.Container, cfg.HostPort))

	if !followAfterStart(cli) {
		return 0
	}

	console.Info("following logs (Ctrl-C to detach)")
	if err := docker.StreamLogs(ctx, deps.Docker, id, out, docker.LogsOptions{Follow: true}); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

// followAfterStart decides whether up tails logs after a successful start.
// --detach always wins; otherwise the sticky follow_logs default from the
// global config applies.
func followAfterStart(cli CLI) bool {
	if cli.Up.Detach {
		return false
	}
	if gc := globalDefaults(); gc.FollowLogs != nil {
		return *gc.FollowLogs
	}
	return true
}

// runSpec assembles the container spec. A missing credentials file degrades
// to an unauthenticated run with a warning; it never aborts the start.
func runSpec(cfg config.Project, resolution creds.Resolution, console *ui.Console) docker.RunSpec {
	env := make([]string, 0, len(cfg.Env)+3)
	for _, key := range sortedKeys(cfg.Env) {
		env = append(env, key+"="+cfg.Env[key])
	}

	spec := docker.RunSpec{
		Name:          cfg.Container,
		Image:         cfg.Image,
		HostPort:      cfg.HostPort,
		ContainerPort: cfg.ContainerPort,
	}

	if resolution.Exists {
		spec.CredentialBind = resolution.Path
		spec.CredentialPath = constants.CredentialMountPath
		env = append(env,
			constants.EnvContainerCredentials+"="+constants.CredentialMountPath,
			constants.EnvContainerAuthMethod+"="+constants.AuthMethodServiceAccount,
		)
		if project := resolveGCPProject(cfg, resolution); project != "" {
			env = append(env, constants.EnvContainerProject+"="+project)
		}
		console.Item("Credentials", fmt.Sprintf("%s (%s)", resolution.Path, resolution.Source))
	} else {
		env = append(env, constants.EnvContainerAuthMethod+"="+constants.AuthMethodNone)
		console.Warn(fmt.Sprintf("credentials file not found at %s; starting without cloud credentials", resolution.Path))
	}

	spec.Env = env
	return spec
}

// resolveGCPProject prefers the configured project id, then whatever the key
// file declares.
func resolveGCPProject(cfg config.Project, resolution creds.Resolution) string {
	if cfg.GCPProject != "" {
		return cfg.GCPProject
	}
	key, err := creds.ReadKeyFile(resolution.Path)
	if err != nil {
		return ""
	}
	return key.EffectiveProject()
}

func authMethod(resolution creds.Resolution) string {
	if resolution.Exists {
		return constants.AuthMethodServiceAccount
	}
	return constants.AuthMethodNone
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
