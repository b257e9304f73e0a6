package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Validation errors for package manifests.
var (
	// ErrDuplicatePackage indicates the manifest lists a package twice.
	ErrDuplicatePackage = errors.New("duplicate package")

	// ErrInvalidPackageName indicates a name that is not a syntactically
	// valid package identifier.
	ErrInvalidPackageName = errors.New("invalid package name")

	// ErrEmptyManifest indicates a manifest with no packages.
	ErrEmptyManifest = errors.New("empty manifest")
)

// packagePattern matches valid package identifiers: lowercase alphanumerics
// with the separator set allowed by common package managers.
var packagePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9@._+-]*$`)

// ValidName reports whether name is a syntactically valid package identifier.
func ValidName(name string) bool {
	return packagePattern.MatchString(name)
}

// Validate checks the manifest's invariants: at least one package, no
// duplicate entries, every name syntactically valid. All violations are
// collected into a single error.
func (m *Manifest) Validate() error {
	if len(m.Packages) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyManifest, m.Name)
	}

	var problems []string

	seen := make(map[string]bool, len(m.Packages))
	for _, pkg := range m.Packages {
		if seen[pkg] {
			problems = append(problems, fmt.Sprintf("%v: %s", ErrDuplicatePackage, pkg))
			continue
		}
		seen[pkg] = true

		if !ValidName(pkg) {
			problems = append(problems, fmt.Sprintf("%v: %q", ErrInvalidPackageName, pkg))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("manifest %s: %s", m.Name, strings.Join(problems, "; "))
	}

	return nil
}

// Duplicates returns the package names listed more than once, in first-seen
// order.
func (m *Manifest) Duplicates() []string {
	seen := make(map[string]int, len(m.Packages))
	var dupes []string
	for _, pkg := range m.Packages {
		seen[pkg]++
		if seen[pkg] == 2 {
			dupes = append(dupes, pkg)
		}
	}
	return dupes
}

// Diff compares two manifests and returns the packages only in a (removed)
// and only in b (added), both sorted.
func Diff(a, b *Manifest) (removed, added []string) {
	inA := make(map[string]bool, len(a.Packages))
	for _, pkg := range a.Packages {
		inA[pkg] = true
	}
	inB := make(map[string]bool, len(b.Packages))
	for _, pkg := range b.Packages {
		inB[pkg] = true
	}

	for pkg := range inA {
		if !inB[pkg] {
			removed = append(removed, pkg)
		}
	}
	for pkg := range inB {
		if !inA[pkg] {
			added = append(added, pkg)
		}
	}

	sort.Strings(removed)
	sort.Strings(added)
	return removed, added
}
