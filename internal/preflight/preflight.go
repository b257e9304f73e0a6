// Package preflight provides pre-flight validation for required binaries and system checks.
package preflight

import (
	"os/exec"
)

// BinaryCheck represents a required binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "https://..."
}

// requiredBinaries defines binaries that must be present for kiln to function.
var requiredBinaries = []BinaryCheck{
	{
		Name:        "docker",
		Required:    true,
		InstallHint: "Install Docker: https://docs.docker.com/get-docker/",
	},
	{
		Name:        "git",
		Required:    true,
		InstallHint: "Install git: https://git-scm.com/downloads",
	},
}

// optionalBinaries defines binaries that enhance kiln but are not strictly required.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "tox",
		Required:    false,
		InstallHint: "Install tox for local runs outside containers: pip install tox",
	},
	{
		Name:        "xvfb-run",
		Required:    false,
		InstallHint: "Install xvfb for headless local test runs",
	},
}

// CheckRequiredBinaries validates only required binaries are available.
// Returns list of missing required binaries.
func CheckRequiredBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range requiredBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckOptionalBinaries validates optional binaries and returns missing ones.
func CheckOptionalBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range optionalBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckAll performs all pre-flight checks and returns warnings and errors.
// Errors are for missing required binaries, warnings for missing optional ones.
func CheckAll() (warnings []string, errors []string) {
	for _, bin := range CheckRequiredBinaries() {
		errors = append(errors, bin.Name+": "+bin.InstallHint)
	}

	for _, bin := range CheckOptionalBinaries() {
		warnings = append(warnings, bin.Name+": "+bin.InstallHint)
	}

	return warnings, errors
}

// IsBinaryAvailable checks if a specific binary is available in PATH.
func IsBinaryAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
