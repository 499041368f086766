// Where: internal/docker/container_test.go
// What: Tests for single-container lifecycle helpers.
// Why: Replacement ordering and degraded-mode wiring are load-bearing.
package docker

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

type fakeClient struct {
	containers []container.Summary
	listErr    error

	calls []string

	createdConfig *container.Config
	createdHost   *container.HostConfig
	createdName   string

	logs []byte
}

func (f *fakeClient) ContainerList(_ context.Context, _ container.ListOptions) ([]container.Summary, error) {
	f.calls = append(f.calls, "list")
	return f.containers, f.listErr
}

func (f *fakeClient) ContainerCreate(_ context.Context, config *container.Config, hostConfig *container.HostConfig,
	_ *network.NetworkingConfig, _ *ocispec.Platform, name string) (container.CreateResponse, error) {
	f.calls = append(f.calls, "create")
	f.createdConfig, f.createdHost, f.createdName = config, hostConfig, name
	return container.CreateResponse{ID: "new-id"}, nil
}

func (f *fakeClient) ContainerStart(_ context.Context, _ string, _ container.StartOptions) error {
	f.calls = append(f.calls, "start")
	return nil
}

func (f *fakeClient) ContainerStop(_ context.Context, _ string, _ container.StopOptions) error {
	f.calls = append(f.calls, "stop")
	return nil
}

func (f *fakeClient) ContainerRemove(_ context.Context, _ string, _ container.RemoveOptions) error {
	f.calls = append(f.calls, "remove")
	return nil
}

func (f *fakeClient) ContainerLogs(_ context.Context, _ string, _ container.LogsOptions) (io.ReadCloser, error) {
	f.calls = append(f.calls, "logs")
	return io.NopCloser(bytes.NewReader(f.logs)), nil
}

func TestFindByNameRequiresExactMatch(t *testing.T) {
	cli := &fakeClient{containers: []container.Summary{
		{ID: "a", Names: []string{"/elastic-mcp-old"}},
		{ID: "b", Names: []string{"/elastic-mcp"}},
	}}

	ctr, err := FindByName(context.Background(), cli, "elastic-mcp")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if ctr == nil || ctr.ID != "b" {
		t.Fatalf("unexpected container: %#v", ctr)
	}
}

func TestFindByNameNoMatch(t *testing.T) {
	cli := &fakeClient{containers: []container.Summary{
		{ID: "a", Names: []string{"/elastic-mcp-old"}},
	}}

	ctr, err := FindByName(context.Background(), cli, "elastic-mcp")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if ctr != nil {
		t.Fatalf("expected no match, got %#v", ctr)
	}
}

func TestRemoveIfExistsStopsThenRemoves(t *testing.T) {
	cli := &fakeClient{containers: []container.Summary{
		{ID: "old", Names: []string{"/elastic-mcp"}},
	}}

	removed, err := RemoveIfExists(context.Background(), cli, "elastic-mcp")
	if err != nil {
		t.Fatalf("remove if exists: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	want := []string{"list", "stop", "remove"}
	if len(cli.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", cli.calls)
	}
	for i, call := range want {
		if cli.calls[i] != call {
			t.Fatalf("unexpected call order: %v", cli.calls)
		}
	}
}

func TestRemoveIfExistsAbsentContainer(t *testing.T) {
	cli := &fakeClient{}

	removed, err := RemoveIfExists(context.Background(), cli, "elastic-mcp")
	if err != nil {
		t.Fatalf("remove if exists: %v", err)
	}
	if removed {
		t.Fatal("expected no removal")
	}
}

func TestCreateAndStartWithCredentials(t *testing.T) {
	cli := &fakeClient{}
	spec := RunSpec{
		Name:           "elastic-mcp",
		Image:          "elastic-mcp:latest",
		HostPort:       8000,
		ContainerPort:  8000,
		Env:            []string{"EMCP_AUTH_METHOD=service-account"},
		CredentialBind: "/home/dev/key.json",
		CredentialPath: "/secrets/gcp/key.json",
	}

	id, err := CreateAndStart(context.Background(), cli, spec)
	if err != nil {
		t.Fatalf("create and start: %v", err)
	}
	if id != "new-id" {
		t.Fatalf("unexpected id: %s", id)
	}
	if cli.createdName != "elastic-mcp" {
		t.Fatalf("unexpected name: %s", cli.createdName)
	}

	if len(cli.createdHost.Mounts) != 1 {
		t.Fatalf("expected one mount, got %#v", cli.createdHost.Mounts)
	}
	m := cli.createdHost.Mounts[0]
	if m.Source != "/home/dev/key.json" || m.Target != "/secrets/gcp/key.json" || !m.ReadOnly {
		t.Fatalf("unexpected mount: %#v", m)
	}

	port := nat.Port("8000/tcp")
	bindings, ok := cli.createdHost.PortBindings[port]
	if !ok || len(bindings) != 1 || bindings[0].HostPort != "8000" {
		t.Fatalf("unexpected port bindings: %#v", cli.createdHost.PortBindings)
	}
	if _, ok := cli.createdConfig.ExposedPorts[port]; !ok {
		t.Fatalf("port not exposed: %#v", cli.createdConfig.ExposedPorts)
	}
	if cli.createdConfig.Labels[ManagedLabel] != "true" {
		t.Fatalf("managed label missing: %#v", cli.createdConfig.Labels)
	}
}

func TestCreateAndStartDegradedModeHasNoMount(t *testing.T) {
	cli := &fakeClient{}
	spec := RunSpec{
		Name:          "elastic-mcp",
		Image:         "elastic-mcp:latest",
		HostPort:      8000,
		ContainerPort: 8000,
		Env:           []string{"EMCP_AUTH_METHOD=none"},
	}

	if _, err := CreateAndStart(context.Background(), cli, spec); err != nil {
		t.Fatalf("create and start: %v", err)
	}
	if len(cli.createdHost.Mounts) != 0 {
		t.Fatalf("expected no mounts, got %#v", cli.createdHost.Mounts)
	}
}

func TestStreamLogsDemuxes(t *testing.T) {
	var muxed bytes.Buffer
	stdout := stdcopy.NewStdWriter(&muxed, stdcopy.Stdout)
	stderr := stdcopy.NewStdWriter(&muxed, stdcopy.Stderr)
	stdout.Write([]byte("hello\n"))
	stderr.Write([]byte("warn\n"))

	cli := &fakeClient{logs: muxed.Bytes()}
	var out bytes.Buffer
	if err := StreamLogs(context.Background(), cli, "id", &out, LogsOptions{Tail: 10}); err != nil {
		t.Fatalf("stream logs: %v", err)
	}
	if got := out.String(); got != "hello\nwarn\n" {
		t.Fatalf("unexpected logs: %q", got)
	}
}
