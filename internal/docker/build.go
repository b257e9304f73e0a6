package docker

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
)

// BuildImage builds a rendered recipe into an image tagged with tag.
// The Dockerfile is the only file in the build context; everything the
// recipe needs is fetched by the recipe itself.
func (c *Client) BuildImage(ctx context.Context, dockerfile, tag string, progress io.Writer) error {
	buildContext, err := tarDockerfile(dockerfile)
	if err != nil {
		return err
	}

	resp, err := c.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("build image %s: %w", tag, err)
	}
	defer resp.Body.Close()

	return streamBuildOutput(resp.Body, progress)
}

// tarDockerfile wraps Dockerfile content into an in-memory tar build context.
func tarDockerfile(dockerfile string) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	hdr := &tar.Header{
		Name: "Dockerfile",
		Mode: 0644,
		Size: int64(len(dockerfile)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return nil, fmt.Errorf("write build context header: %w", err)
	}
	if _, err := tw.Write([]byte(dockerfile)); err != nil {
		return nil, fmt.Errorf("write build context: %w", err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close build context: %w", err)
	}

	return &buf, nil
}

// buildMessage is one line of the daemon's JSON build stream.
type buildMessage struct {
	Stream string `json:"stream"`
	Error  string `json:"error"`
}

// streamBuildOutput copies daemon build output to progress and surfaces
// build errors verbatim, as the underlying tool reported them.
func streamBuildOutput(body io.Reader, progress io.Writer) error {
	dec := json.NewDecoder(body)
	for {
		var msg buildMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode build output: %w", err)
		}

		if msg.Error != "" {
			return fmt.Errorf("build failed: %s", msg.Error)
		}
		if msg.Stream != "" && progress != nil {
			fmt.Fprint(progress, msg.Stream)
		}
	}
}
