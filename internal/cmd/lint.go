package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/manifest"
	"kiln/internal/recipe"
	"kiln/internal/ui"
)

// lintCmd validates the whole project before baking.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate profiles, manifests, and the template",
	Long:  "Validate all profiles, package manifests, and the recipe template without rendering output.",
	Args:  cobra.NoArgs,
	Run:   runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	ui.Blue.Println("Linting project...")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	errors := 0

	// Profiles: each must load, validate, and render
	fmt.Println("Validating profiles:")
	profiles, err := recipe.ListProfiles(cfg.ProfilesDir())
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		ui.Warning("No profiles found")
	}

	for _, name := range profiles {
		if err := lintProfile(cfg, name); err != nil {
			ui.Red.Printf("  x %s: %v\n", name, err)
			errors++
		} else {
			ui.Green.Printf("  * %s\n", name)
		}
	}

	// Manifests
	fmt.Println()
	fmt.Println("Validating package manifests:")
	manifests, err := manifest.List(cfg.ManifestsDir())
	if err != nil {
		ui.Warning("No manifests directory")
	} else if len(manifests) == 0 {
		ui.Warning("No manifests found")
	}

	for _, name := range manifests {
		m, err := manifest.Load(filepath.Join(cfg.ManifestsDir(), name))
		if err != nil {
			ui.Red.Printf("  x %s: %v\n", name, err)
			errors++
			continue
		}
		if err := m.Validate(); err != nil {
			ui.Red.Printf("  x %s: %v\n", name, err)
			errors++
		} else {
			ui.Green.Printf("  * %s (%d packages)\n", name, len(m.Packages))
		}
	}

	// Summary
	fmt.Println()
	if errors > 0 {
		ui.Red.Printf("Found %d error(s). Fix before baking.\n", errors)
		os.Exit(1)
	}
	ui.Success("All checks passed")
}

// lintProfile loads and renders one profile without writing output.
func lintProfile(cfg *config.Config, name string) error {
	path, err := recipe.ProfilePath(cfg.ProfilesDir(), name)
	if err != nil {
		return err
	}

	profile, err := recipe.LoadProfile(path)
	if err != nil {
		return err
	}

	if _, err := recipe.Render(profile, cfg.TemplatesDir()); err != nil {
		return err
	}

	return nil
}
