package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiln/internal/recipe"
)

func TestInitCmd(t *testing.T) {
	t.Run("scaffolds project structure", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeCmd(t, "init", dir)
		require.NoError(t, err)

		for _, sub := range []string{"profiles", "templates", "packages", "output"} {
			info, err := os.Stat(filepath.Join(dir, "recipes", sub))
			require.NoError(t, err, sub)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("creates one profile per valid combination", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeCmd(t, "init", dir)
		require.NoError(t, err)

		entries, err := os.ReadDir(filepath.Join(dir, "recipes", "profiles"))
		require.NoError(t, err)
		assert.Len(t, entries, 6)

		// Every scaffolded profile must load and render
		for _, entry := range entries {
			path := filepath.Join(dir, "recipes", "profiles", entry.Name())
			profile, err := recipe.LoadProfile(path)
			require.NoError(t, err, entry.Name())

			_, err = recipe.Render(profile, "")
			assert.NoError(t, err, entry.Name())
		}
	})

	t.Run("creates template and manifest", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeCmd(t, "init", dir)
		require.NoError(t, err)

		tmpl, err := os.ReadFile(filepath.Join(dir, "recipes", "templates", "Dockerfile.tmpl"))
		require.NoError(t, err)
		assert.Equal(t, recipe.DefaultTemplate(), string(tmpl))

		tools, err := os.ReadFile(filepath.Join(dir, "recipes", "packages", "test-tools.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(tools), "pytest")
		assert.Contains(t, string(tools), "tox")
	})

	t.Run("reinit does not overwrite", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeCmd(t, "init", dir)
		require.NoError(t, err)

		profilePath := filepath.Join(dir, "recipes", "profiles", "qt6-webengine.yml")
		require.NoError(t, os.WriteFile(profilePath, []byte("edited: true\n"), 0644))

		_, err = executeCmd(t, "init", dir)
		require.NoError(t, err)

		data, err := os.ReadFile(profilePath)
		require.NoError(t, err)
		assert.Equal(t, "edited: true\n", string(data))
	})
}
