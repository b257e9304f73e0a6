package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "recipes", "profiles"), 0755))
	nested := filepath.Join(root, "recipes", "templates")
	require.NoError(t, os.MkdirAll(nested, 0755))

	chdir(t, nested)

	found, err := FindRoot()
	require.NoError(t, err)

	// Resolve symlinks for macOS /var -> /private/var
	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestFindRoot_NotFound(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := FindRoot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project root not found")
}

func TestConfigPaths(t *testing.T) {
	cfg := New("/home/dev/qt-images")

	assert.Equal(t, "/home/dev/qt-images/recipes", cfg.RecipesDir)
	assert.Equal(t, "/home/dev/qt-images/recipes/profiles", cfg.ProfilesDir())
	assert.Equal(t, "/home/dev/qt-images/recipes/templates", cfg.TemplatesDir())
	assert.Equal(t, "/home/dev/qt-images/recipes/packages", cfg.ManifestsDir())
	assert.Equal(t, "/home/dev/qt-images/recipes/output", cfg.OutputDir())
	assert.Equal(t, "/home/dev/qt-images/recipes/.kiln/snapshots", cfg.SnapshotsDir())
}
