package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupOutput creates a recipes dir with rendered output for two profiles.
func setupOutput(t *testing.T) string {
	t.Helper()
	recipesDir := t.TempDir()
	for _, profile := range []string{"qt6-webengine", "qt5-webkit"} {
		dir := filepath.Join(recipesDir, "output", profile)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM archlinux:latest\n# "+profile+"\n"), 0644))
	}
	return recipesDir
}

func TestCreate(t *testing.T) {
	recipesDir := setupOutput(t)

	name, err := Create(recipesDir)
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.Contains(t, name, SnapshotPrefix)

	data, err := os.ReadFile(filepath.Join(recipesDir, ".kiln", "snapshots", name, "qt6-webengine", "Dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "qt6-webengine")
}

func TestCreate_NothingToSnapshot(t *testing.T) {
	name, err := Create(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestList(t *testing.T) {
	recipesDir := setupOutput(t)

	first, err := Create(recipesDir)
	require.NoError(t, err)
	second, err := Create(recipesDir)
	require.NoError(t, err)

	snapshots, err := List(recipesDir)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	// Newest first
	assert.Equal(t, second, snapshots[0].Name)
	assert.Equal(t, first, snapshots[1].Name)
	assert.Equal(t, 2, snapshots[0].FileCount)
}

func TestList_NoSnapshots(t *testing.T) {
	snapshots, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestRestore(t *testing.T) {
	recipesDir := setupOutput(t)

	name, err := Create(recipesDir)
	require.NoError(t, err)

	// Change the output after snapshotting
	changed := filepath.Join(recipesDir, "output", "qt6-webengine", "Dockerfile")
	require.NoError(t, os.WriteFile(changed, []byte("FROM fedora:latest\n"), 0644))

	require.NoError(t, Restore(recipesDir, name))

	data, err := os.ReadFile(changed)
	require.NoError(t, err)
	assert.Contains(t, string(data), "archlinux")

	// A pre-rollback backup was taken
	entries, err := os.ReadDir(filepath.Join(recipesDir, ".kiln", "snapshots"))
	require.NoError(t, err)
	foundBackup := false
	for _, e := range entries {
		if len(e.Name()) > 12 && e.Name()[:12] == "pre-rollback" {
			foundBackup = true
		}
	}
	assert.True(t, foundBackup)
}

func TestRestore_MissingSnapshot(t *testing.T) {
	recipesDir := setupOutput(t)

	err := Restore(recipesDir, "snapshot-nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot not found")
}

func TestRestore_NoLeftoverTempDirs(t *testing.T) {
	recipesDir := setupOutput(t)

	name, err := Create(recipesDir)
	require.NoError(t, err)
	require.NoError(t, Restore(recipesDir, name))

	entries, err := os.ReadDir(recipesDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".restore-")
	}
}

func TestCleanup_RetainsLimit(t *testing.T) {
	recipesDir := setupOutput(t)

	for i := 0; i < MaxSnapshots+3; i++ {
		_, err := Create(recipesDir)
		require.NoError(t, err)
	}

	snapshots, err := List(recipesDir)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(snapshots), MaxSnapshots)
}
