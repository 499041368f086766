// Where: internal/docker/container.go
// What: Single-container lifecycle helpers on the Docker SDK.
// Why: Provide the replace/start/stop/logs operations the commands need.
package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
)

// ManagedLabel marks containers created by this CLI.
const ManagedLabel = "io.emcp.managed"

const stopTimeoutSeconds = 10

// RunSpec describes the container to create and start.
type RunSpec struct {
	Name           string
	Image          string
	HostPort       int
	ContainerPort  int
	Env            []string // KEY=VALUE pairs
	CredentialBind string   // host path bind-mounted read-only, empty for degraded mode
	CredentialPath string   // mount target inside the container
}

// FindByName returns the container with exactly the given name, running or
// not, or nil when none exists.
func FindByName(ctx context.Context, cli Client, name string) (*container.Summary, error) {
	nameFilter := filters.NewArgs()
	nameFilter.Add("name", name)

	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true, Filters: nameFilter})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	// The name filter matches substrings, so confirm the exact name.
	for _, ctr := range containers {
		for _, n := range ctr.Names {
			if strings.TrimPrefix(n, "/") == name {
				found := ctr
				return &found, nil
			}
		}
	}
	return nil, nil
}

// RemoveIfExists stops and removes any container with the given name.
// Reports whether a container was removed.
func RemoveIfExists(ctx context.Context, cli Client, name string) (bool, error) {
	ctr, err := FindByName(ctx, cli, name)
	if err != nil {
		return false, err
	}
	if ctr == nil {
		return false, nil
	}

	timeout := stopTimeoutSeconds
	if err := cli.ContainerStop(ctx, ctr.ID, container.StopOptions{Timeout: &timeout}); err != nil {
		return false, fmt.Errorf("stop container %s: %w", name, err)
	}
	if err := cli.ContainerRemove(ctx, ctr.ID, container.RemoveOptions{}); err != nil {
		return false, fmt.Errorf("remove container %s: %w", name, err)
	}
	return true, nil
}

// CreateAndStart creates the container described by spec and starts it,
// returning the new container id.
func CreateAndStart(ctx context.Context, cli Client, spec RunSpec) (string, error) {
	if spec.Name == "" || spec.Image == "" {
		return "", fmt.Errorf("container name and image are required")
	}

	port, err := nat.NewPort("tcp", strconv.Itoa(spec.ContainerPort))
	if err != nil {
		return "", fmt.Errorf("invalid container port %d: %w", spec.ContainerPort, err)
	}

	cfg := &container.Config{
		Image:        spec.Image,
		Env:          spec.Env,
		ExposedPorts: nat.PortSet{port: struct{}{}},
		Labels:       map[string]string{ManagedLabel: "true"},
	}
	hostCfg := &container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: strconv.Itoa(spec.HostPort)}},
		},
	}
	if spec.CredentialBind != "" {
		hostCfg.Mounts = []mount.Mount{{
			Type:     mount.TypeBind,
			Source:   spec.CredentialBind,
			Target:   spec.CredentialPath,
			ReadOnly: true,
		}}
	}

	created, err := cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("create container %s: %w", spec.Name, err)
	}
	if err := cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container %s: %w", spec.Name, err)
	}
	return created.ID, nil
}

// LogsOptions configures log streaming.
type LogsOptions struct {
	Follow     bool
	Tail       int
	Timestamps bool
}

// StreamLogs copies container logs to out until EOF or context cancellation.
// Containers created by this CLI have no TTY, so the stream is multiplexed
// and demuxed with stdcopy.
func StreamLogs(ctx context.Context, cli Client, containerID string, out io.Writer, opts LogsOptions) error {
	tail := "all"
	if opts.Tail > 0 {
		tail = strconv.Itoa(opts.Tail)
	}
	reader, err := cli.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     opts.Follow,
		Tail:       tail,
		Timestamps: opts.Timestamps,
	})
	if err != nil {
		return fmt.Errorf("container logs: %w", err)
	}
	defer reader.Close()

	if _, err := stdcopy.StdCopy(out, out, reader); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream logs: %w", err)
	}
	return nil
}
