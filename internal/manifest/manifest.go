// Package manifest implements package manifests: flat lists of dependency
// names consumed by an external package-installation tool.
//
// Manifests come in two forms. The plain form is one package name per line
// with '#' comments, matching upstream requirements files. The YAML form
// wraps the same list in a versioned kiln document:
//
//	apiVersion: kiln.dev/v1
//	kind: Manifest
//	name: test-tools
//	packages:
//	  - pytest
//	  - tox
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"kiln/internal/recipe"
)

// Manifest is a named flat list of package names. The list has no ordering
// significance; Normalize sorts it for stable output.
type Manifest struct {
	// APIVersion identifies the schema version (YAML form only).
	APIVersion string `yaml:"apiVersion,omitempty"`

	// Kind identifies the document type (YAML form only).
	Kind string `yaml:"kind,omitempty"`

	// Name is the manifest name, defaulted from the filename.
	Name string `yaml:"name,omitempty"`

	// Packages is the flat list of package names.
	Packages []string `yaml:"packages"`
}

// Load reads a manifest from disk. Files ending in .yml/.yaml are parsed as
// versioned YAML documents; anything else is treated as a plain list.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	var m *Manifest
	if ext == ".yml" || ext == ".yaml" {
		m, err = parseYAML(data)
	} else {
		m, err = parsePlain(data), nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	if m.Name == "" {
		m.Name = name
	}

	return m, nil
}

// parseYAML parses the versioned YAML manifest form.
func parseYAML(data []byte) (*Manifest, error) {
	if _, err := recipe.ValidateDocument(data, recipe.KindManifest); err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &m, nil
}

// parsePlain parses the plain one-package-per-line form. Blank lines are
// skipped and '#' starts a comment, anywhere on a line.
func parsePlain(data []byte) *Manifest {
	var packages []string
	for _, line := range strings.Split(string(data), "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		packages = append(packages, line)
	}

	return &Manifest{Packages: packages}
}

// Normalize returns the package list sorted and with exact duplicates kept,
// so validation still sees them.
func (m *Manifest) Normalize() []string {
	sorted := make([]string, len(m.Packages))
	copy(sorted, m.Packages)
	sort.Strings(sorted)
	return sorted
}

// List returns the names of all manifests in the manifests directory.
func List(manifestsDir string) ([]string, error) {
	entries, err := os.ReadDir(manifestsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifests directory not found: %s", manifestsDir)
		}
		return nil, fmt.Errorf("read manifests directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
