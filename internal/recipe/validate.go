package recipe

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Validation errors for profiles and document versioning.
var (
	// ErrUnsupportedAPIVersion indicates an unknown or unsupported API version.
	ErrUnsupportedAPIVersion = errors.New("unsupported API version")

	// ErrInvalidKind indicates an unknown document kind.
	ErrInvalidKind = errors.New("invalid document kind")

	// ErrKindMismatch indicates the kind doesn't match what was expected.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrUnsupportedCombination indicates a variable combination with no
	// package set: Qt6 only ships WebEngine bindings, so qt6 without
	// webengine must fail rendering.
	ErrUnsupportedCombination = errors.New("unsupported combination: qt6 requires webengine")

	// ErrInvalidInterpreter indicates the python variable is empty or not a
	// valid binary name.
	ErrInvalidInterpreter = errors.New("invalid interpreter name")

	// ErrMissingName indicates a profile without a name.
	ErrMissingName = errors.New("missing profile name")
)

// interpreterPattern matches plain interpreter binary names (python3,
// python3.11, pypy3). Paths and shell metacharacters are rejected.
var interpreterPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*$`)

// DocumentMeta contains the common metadata fields from a kiln document.
type DocumentMeta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// ValidateAPIVersion checks if the provided version is supported.
// Returns nil if the version is valid or empty (for backwards compatibility).
func ValidateAPIVersion(version string) error {
	if version == "" {
		return nil
	}

	for _, supported := range SupportedAPIVersions {
		if version == supported {
			return nil
		}
	}

	return fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedAPIVersion, version, SupportedAPIVersions)
}

// ValidateKind checks if the provided kind is valid and matches the expected kind.
// Returns nil if the kind is valid or empty (for backwards compatibility).
func ValidateKind(kind, expected string) error {
	if kind == "" {
		return nil
	}

	valid := false
	for _, supported := range SupportedKinds {
		if kind == supported {
			valid = true
			break
		}
	}

	if !valid {
		return fmt.Errorf("%w: %s (supported: %v)", ErrInvalidKind, kind, SupportedKinds)
	}

	if kind != expected {
		return fmt.Errorf("%w: got %s, expected %s", ErrKindMismatch, kind, expected)
	}

	return nil
}

// ValidateDocument extracts and validates apiVersion and kind from raw YAML.
func ValidateDocument(data []byte, expectedKind string) (*DocumentMeta, error) {
	var meta DocumentMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse document metadata: %w", err)
	}

	if err := ValidateAPIVersion(meta.APIVersion); err != nil {
		return &meta, err
	}

	if err := ValidateKind(meta.Kind, expectedKind); err != nil {
		return &meta, err
	}

	return &meta, nil
}

// ValidateVariables checks a variable combination against the matrix.
// The qt6-without-webengine cell is a deliberate guard: there is no Qt6
// WebKit package set, so rendering that combination always fails.
func ValidateVariables(v Variables) error {
	if v.Qt6 && !v.WebEngine {
		return ErrUnsupportedCombination
	}

	if v.Python == "" || !interpreterPattern.MatchString(v.Python) {
		return fmt.Errorf("%w: %q", ErrInvalidInterpreter, v.Python)
	}

	return nil
}

// Validate checks a full profile: name, document metadata, and variables.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}

	if err := ValidateAPIVersion(p.APIVersion); err != nil {
		return err
	}

	if err := ValidateKind(p.Kind, KindProfile); err != nil {
		return err
	}

	return ValidateVariables(p.Variables)
}
