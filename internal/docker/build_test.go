package docker

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildImage(t *testing.T) {
	mock := NewMockAPI()

	var gotOptions types.ImageBuildOptions
	var gotContext []byte
	mock.ImageBuildFunc = func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
		gotOptions = options
		data, err := io.ReadAll(buildContext)
		require.NoError(t, err)
		gotContext = data
		return types.ImageBuildResponse{
			Body: buildStream(buildMessage{Stream: "Step 1/5 : FROM archlinux:latest\n"}),
		}, nil
	}

	client := NewClientWithAPI(mock)

	var progress bytes.Buffer
	err := client.BuildImage(context.Background(), "FROM archlinux:latest\n", "kiln/qt6-webengine", &progress)
	require.NoError(t, err)

	assert.Equal(t, []string{"kiln/qt6-webengine"}, gotOptions.Tags)
	assert.Equal(t, "Dockerfile", gotOptions.Dockerfile)
	assert.True(t, gotOptions.Remove)
	assert.Contains(t, progress.String(), "Step 1/5")

	// The build context must be a tar holding exactly the Dockerfile.
	tr := tar.NewReader(bytes.NewReader(gotContext))
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "Dockerfile", hdr.Name)
	content, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "FROM archlinux:latest\n", string(content))
	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBuildImage_APIError(t *testing.T) {
	mock := NewMockAPI()
	mock.ImageBuildFunc = func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
		return types.ImageBuildResponse{}, errMockBuild
	}

	client := NewClientWithAPI(mock)

	err := client.BuildImage(context.Background(), "FROM archlinux:latest\n", "kiln/test", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errMockBuild)
}

func TestBuildImage_DaemonError(t *testing.T) {
	mock := NewMockAPI()
	mock.ImageBuildFunc = func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
		return types.ImageBuildResponse{
			Body: buildStream(
				buildMessage{Stream: "Step 3/5 : RUN pacman -Syu\n"},
				buildMessage{Error: "The command '/bin/sh -c pacman -Syu' returned a non-zero code: 1"},
			),
		}, nil
	}

	client := NewClientWithAPI(mock)

	err := client.BuildImage(context.Background(), "FROM archlinux:latest\n", "kiln/test", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-zero code: 1")
}

func TestBuildImage_NilProgress(t *testing.T) {
	mock := NewMockAPI()
	mock.ImageBuildFunc = func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
		return types.ImageBuildResponse{
			Body: buildStream(buildMessage{Stream: "ok\n"}),
		}, nil
	}

	client := NewClientWithAPI(mock)

	err := client.BuildImage(context.Background(), "FROM archlinux:latest\n", "kiln/test", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.ImageBuildCalls)
}
