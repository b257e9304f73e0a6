package recipe

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"kiln/internal/fileutil"
)

// DefaultToxEnv is used when a profile does not name a tox environment.
const DefaultToxEnv = "py3"

// Context is the data handed to the recipe template. Everything is carried
// in slices or scalars so rendering stays byte-deterministic.
type Context struct {
	// Name is the profile name.
	Name string

	// Variables are the profile's template inputs.
	Variables Variables

	// ToxEnv is the tox environment for the container start command.
	ToxEnv string

	// Packages, Repos, Pins, Interpreter come from the selection table.
	Packages    []string
	Repos       []Repo
	Pins        []Pin
	Interpreter *InterpreterBuild
}

// BuildContext validates the profile and resolves its selection into
// template data.
func BuildContext(p *Profile) (*Context, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sel, err := Select(p.Variables)
	if err != nil {
		return nil, err
	}

	toxEnv := p.ToxEnv
	if toxEnv == "" {
		toxEnv = DefaultToxEnv
	}

	return &Context{
		Name:        p.Name,
		Variables:   p.Variables,
		ToxEnv:      toxEnv,
		Packages:    sel.Packages,
		Repos:       sel.Repos,
		Pins:        sel.Pins,
		Interpreter: sel.Interpreter,
	}, nil
}

// Render renders a profile into Dockerfile text. templatesDir may be empty,
// in which case the embedded default template is used.
func Render(p *Profile, templatesDir string) (string, error) {
	rctx, err := BuildContext(p)
	if err != nil {
		return "", fmt.Errorf("profile %s: %w", p.Name, err)
	}

	source, err := loadTemplateSource(templatesDir)
	if err != nil {
		return "", err
	}

	tmpl, err := newEngine(TemplateName).Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rctx); err != nil {
		return "", fmt.Errorf("render profile %s: %w", p.Name, err)
	}

	return buf.String(), nil
}

// Hash returns the hex sha256 of a rendered recipe, used for determinism
// checks and drift detection.
func Hash(rendered string) string {
	sum := sha256.Sum256([]byte(rendered))
	return hex.EncodeToString(sum[:])
}

// LoadProfile loads and validates a profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	if _, err := ValidateDocument(data, KindProfile); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	return &profile, nil
}

// ListProfiles returns the names of all profiles in the profiles directory.
func ListProfiles(profilesDir string) ([]string, error) {
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profiles directory not found: %s", profilesDir)
		}
		return nil, fmt.Errorf("read profiles directory: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".yml" || filepath.Ext(name) == ".yaml" {
			profiles = append(profiles, name[:len(name)-len(filepath.Ext(name))])
		}
	}

	return profiles, nil
}

// ProfilePath returns the path of a named profile, trying .yml then .yaml.
func ProfilePath(profilesDir, name string) (string, error) {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(profilesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("profile not found: %s", name)
}

// WriteOutput writes a rendered recipe under outputDir/<profile>/Dockerfile.
// The write is atomic so a failed render never leaves a truncated recipe.
func WriteOutput(outputDir, profileName, rendered string) (string, error) {
	outputPath := filepath.Join(outputDir, profileName, "Dockerfile")
	if err := fileutil.WriteFileAtomic(outputPath, []byte(rendered), 0644); err != nil {
		return "", fmt.Errorf("write output for %s: %w", profileName, err)
	}
	return outputPath, nil
}
