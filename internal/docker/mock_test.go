package docker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Common test errors.
var (
	errMockPing   = errors.New("mock: ping failed")
	errMockBuild  = errors.New("mock: image build failed")
	errMockCreate = errors.New("mock: container create failed")
	errMockStart  = errors.New("mock: container start failed")
	errMockLogs   = errors.New("mock: container logs failed")
	errMockWait   = errors.New("mock: container wait failed")
)

// MockAPI is a mock implementation of API for testing.
type MockAPI struct {
	// Function overrides for each method
	PingFunc            func(ctx context.Context) (types.Ping, error)
	ImageBuildFunc      func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ContainerCreateFunc func(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStartFunc  func(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerWaitFunc   func(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerLogsFunc   func(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerRemoveFunc func(ctx context.Context, containerID string, options container.RemoveOptions) error
	CloseFunc           func() error

	// Call tracking
	PingCalls            int
	ImageBuildCalls      int
	ContainerCreateCalls int
	ContainerStartCalls  int
	ContainerWaitCalls   int
	ContainerLogsCalls   int
	ContainerRemoveCalls int
	CloseCalls           int
}

// NewMockAPI creates a new mock with default no-op implementations.
func NewMockAPI() *MockAPI {
	return &MockAPI{}
}

// Ping implements API.
func (m *MockAPI) Ping(ctx context.Context) (types.Ping, error) {
	m.PingCalls++
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return types.Ping{APIVersion: "1.45"}, nil
}

// ImageBuild implements API.
func (m *MockAPI) ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
	m.ImageBuildCalls++
	if m.ImageBuildFunc != nil {
		return m.ImageBuildFunc(ctx, buildContext, options)
	}
	return types.ImageBuildResponse{
		Body: io.NopCloser(bytes.NewReader([]byte{})),
	}, nil
}

// ContainerCreate implements API.
func (m *MockAPI) ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error) {
	m.ContainerCreateCalls++
	if m.ContainerCreateFunc != nil {
		return m.ContainerCreateFunc(ctx, config, hostConfig, networkingConfig, platform, containerName)
	}
	return container.CreateResponse{ID: "mock-container-id"}, nil
}

// ContainerStart implements API.
func (m *MockAPI) ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error {
	m.ContainerStartCalls++
	if m.ContainerStartFunc != nil {
		return m.ContainerStartFunc(ctx, containerID, options)
	}
	return nil
}

// ContainerWait implements API.
func (m *MockAPI) ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error) {
	m.ContainerWaitCalls++
	if m.ContainerWaitFunc != nil {
		return m.ContainerWaitFunc(ctx, containerID, condition)
	}
	statusCh := make(chan container.WaitResponse, 1)
	statusCh <- container.WaitResponse{StatusCode: 0}
	return statusCh, make(chan error, 1)
}

// ContainerLogs implements API.
func (m *MockAPI) ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error) {
	m.ContainerLogsCalls++
	if m.ContainerLogsFunc != nil {
		return m.ContainerLogsFunc(ctx, containerID, options)
	}
	return io.NopCloser(bytes.NewReader([]byte{})), nil
}

// ContainerRemove implements API.
func (m *MockAPI) ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error {
	m.ContainerRemoveCalls++
	if m.ContainerRemoveFunc != nil {
		return m.ContainerRemoveFunc(ctx, containerID, options)
	}
	return nil
}

// Close implements API.
func (m *MockAPI) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// waitChannels builds prefilled ContainerWait channels for a single exit.
func waitChannels(code int64) (<-chan container.WaitResponse, <-chan error) {
	statusCh := make(chan container.WaitResponse, 1)
	statusCh <- container.WaitResponse{StatusCode: code}
	return statusCh, make(chan error, 1)
}

// buildStream encodes daemon build messages as the JSON stream the API returns.
func buildStream(messages ...buildMessage) io.ReadCloser {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, msg := range messages {
		_ = enc.Encode(msg)
	}
	return io.NopCloser(&buf)
}

// Verify MockAPI implements API.
var _ API = (*MockAPI)(nil)
