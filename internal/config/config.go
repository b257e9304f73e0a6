// Package config handles project discovery and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the kiln project configuration.
type Config struct {
	// Root is the project root directory (contains recipes/).
	Root string

	// RecipesDir is the path to the recipes directory.
	RecipesDir string
}

// FindRoot searches upward from the current directory to find the project root.
// The project root is identified by the presence of a recipes/ directory with
// a profiles/ subdirectory.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for dir != "/" {
		recipesDir := filepath.Join(dir, "recipes")
		if info, err := os.Stat(recipesDir); err == nil && info.IsDir() {
			profilesDir := filepath.Join(recipesDir, "profiles")
			if info, err := os.Stat(profilesDir); err == nil && info.IsDir() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no recipes/profiles directory; run 'kiln init')")
}

// Load finds the project root and returns a Config.
func Load() (*Config, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}

	return New(root), nil
}

// New returns a Config rooted at the given directory.
func New(root string) *Config {
	return &Config{
		Root:       root,
		RecipesDir: filepath.Join(root, "recipes"),
	}
}

// ProfilesDir returns the path to the profiles directory.
func (c *Config) ProfilesDir() string {
	return filepath.Join(c.RecipesDir, "profiles")
}

// TemplatesDir returns the path to the templates directory.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.RecipesDir, "templates")
}

// ManifestsDir returns the path to the package manifests directory.
func (c *Config) ManifestsDir() string {
	return filepath.Join(c.RecipesDir, "packages")
}

// OutputDir returns the path to the rendered output directory.
func (c *Config) OutputDir() string {
	return filepath.Join(c.RecipesDir, "output")
}

// SnapshotsDir returns the path to the snapshots directory.
func (c *Config) SnapshotsDir() string {
	return filepath.Join(c.RecipesDir, ".kiln", "snapshots")
}

// LocksDir returns the path to the locks directory.
func (c *Config) LocksDir() string {
	return filepath.Join(c.RecipesDir, ".kiln", "locks")
}
