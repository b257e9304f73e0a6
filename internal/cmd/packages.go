package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/manifest"
	"kiln/internal/ui"
)

var packagesList bool

// packagesCmd validates and inspects package manifests.
var packagesCmd = &cobra.Command{
	Use:   "packages [manifest]",
	Short: "Validate package manifests",
	Long: `Validate package manifests under recipes/packages/.

A manifest is a flat list of package names, either plain text (one per
line, '#' comments) or a versioned YAML document. Validation rejects
duplicate entries and malformed package names.

With two manifests, shows the package diff between them instead.

Examples:
  kiln packages                     # Validate all manifests
  kiln packages test-tools.txt      # Validate one manifest
  kiln packages -l                  # Validate and list package contents
  kiln packages old.txt new.txt     # Diff two manifests`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPackages,
}

func init() {
	packagesCmd.Flags().BoolVarP(&packagesList, "list", "l", false, "List packages in each manifest")

	rootCmd.AddCommand(packagesCmd)
}

func runPackages(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return diffManifests(cfg, args[0], args[1])
	}

	var names []string
	if len(args) > 0 {
		names = args
	} else {
		names, err = manifest.List(cfg.ManifestsDir())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			ui.Warning("No manifests found in %s", cfg.ManifestsDir())
			return nil
		}
	}

	errors := 0
	for _, name := range names {
		m, err := manifest.Load(filepath.Join(cfg.ManifestsDir(), name))
		if err != nil {
			ui.Error("%s: %v", name, err)
			errors++
			continue
		}

		if err := m.Validate(); err != nil {
			ui.Error("%v", err)
			for _, dup := range m.Duplicates() {
				fmt.Printf("    duplicate: %s\n", dup)
			}
			errors++
			continue
		}

		ui.Package("%s: %d packages", m.Name, len(m.Packages))
		if packagesList {
			for _, pkg := range m.Normalize() {
				fmt.Printf("    %s\n", pkg)
			}
		}
	}

	if errors > 0 {
		return fmt.Errorf("%d manifest(s) failed validation", errors)
	}

	return nil
}

// diffManifests prints the package diff between two manifests.
func diffManifests(cfg *config.Config, oldName, newName string) error {
	oldM, err := manifest.Load(filepath.Join(cfg.ManifestsDir(), oldName))
	if err != nil {
		return err
	}
	newM, err := manifest.Load(filepath.Join(cfg.ManifestsDir(), newName))
	if err != nil {
		return err
	}

	removed, added := manifest.Diff(oldM, newM)
	if len(removed) == 0 && len(added) == 0 {
		ui.Success("No package differences between %s and %s", oldM.Name, newM.Name)
		return nil
	}

	for _, pkg := range removed {
		ui.Red.Printf("  - %s\n", pkg)
	}
	for _, pkg := range added {
		ui.Green.Printf("  + %s\n", pkg)
	}

	return nil
}
