package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
)

// sourceMount is where the checkout under test is mounted inside the
// container. The recipe's start command clones from this path so the
// host checkout stays untouched.
const sourceMount = "/outside"

// RunOptions configures a single test-run container.
type RunOptions struct {
	// Image is the recipe image to run.
	Image string

	// SourceDir is the host checkout mounted read-only at /outside.
	SourceDir string

	// Publish lists port specs in docker -p syntax, for recipes whose
	// test suite exposes a debugging port.
	Publish []string

	// Output receives demultiplexed container stdout and stderr.
	Output io.Writer
}

// RunTest creates and starts a container from a recipe image, streams its
// logs, and waits for it to exit. The container's exit code is returned so
// callers can propagate test failures.
func (c *Client) RunTest(ctx context.Context, opts RunOptions) (int, error) {
	config := &container.Config{
		Image: opts.Image,
	}

	hostConfig := &container.HostConfig{
		Binds: []string{fmt.Sprintf("%s:%s:ro", opts.SourceDir, sourceMount)},
	}

	if len(opts.Publish) > 0 {
		exposed, bindings, err := nat.ParsePortSpecs(opts.Publish)
		if err != nil {
			return -1, fmt.Errorf("parse port specs: %w", err)
		}
		config.ExposedPorts = exposed
		hostConfig.PortBindings = bindings
	}

	resp, err := c.api.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	if err != nil {
		return -1, fmt.Errorf("create container: %w", err)
	}

	defer func() {
		_ = c.api.ContainerRemove(context.Background(), resp.ID, container.RemoveOptions{Force: true})
	}()

	if err := c.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return -1, fmt.Errorf("start container: %w", err)
	}

	if opts.Output != nil {
		logs, err := c.api.ContainerLogs(ctx, resp.ID, container.LogsOptions{
			ShowStdout: true,
			ShowStderr: true,
			Follow:     true,
		})
		if err != nil {
			return -1, fmt.Errorf("attach logs: %w", err)
		}
		defer logs.Close()

		if _, err := stdcopy.StdCopy(opts.Output, opts.Output, logs); err != nil {
			return -1, fmt.Errorf("stream logs: %w", err)
		}
	}

	statusCh, errCh := c.api.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return -1, fmt.Errorf("wait for container: %w", err)
		}
		return -1, fmt.Errorf("wait for container: channel closed")
	case status := <-statusCh:
		if status.Error != nil {
			return -1, fmt.Errorf("container error: %s", status.Error.Message)
		}
		return int(status.StatusCode), nil
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}
