package cmd

import (
	"context"
	"fmt"

	"kiln/internal/docker"
)

// withDockerClient executes a function with a Docker client, handling connection and cleanup.
func withDockerClient(ctx context.Context, fn func(*docker.Client) error) error {
	client, err := docker.NewClient()
	if err != nil {
		return fmt.Errorf("connect to docker: %w", err)
	}
	defer client.Close()

	return fn(client)
}

// imageTag returns the image tag for a profile's baked recipe.
func imageTag(profileName string) string {
	return "kiln/" + profileName
}
