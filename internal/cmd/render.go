package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/lock"
	"kiln/internal/recipe"
	"kiln/internal/snapshot"
	"kiln/internal/ui"
)

var (
	renderDryRun bool
	renderCheck  bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render [profile...]",
	Short: "Render profiles into Dockerfiles",
	Long: `Render recipe profiles into Dockerfiles under recipes/output/.

Rendering is deterministic: the same profile and template always produce
byte-identical output. A snapshot of the previous output is taken before
anything is overwritten.

If no profiles are specified, all profiles are rendered.

Examples:
  kiln render                   # Render all profiles
  kiln render qt6-webengine     # Render one profile
  kiln render -n qt6-webengine  # Print to stdout without writing
  kiln render --check           # Verify output matches rendered recipes`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "Print rendered output without writing")
	renderCmd.Flags().BoolVar(&renderCheck, "check", false, "Verify rendered output matches what is on disk")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = recipe.ListProfiles(cfg.ProfilesDir())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no profiles found in %s", cfg.ProfilesDir())
		}
	}

	rendered := make(map[string]string, len(names))
	for _, name := range names {
		path, err := recipe.ProfilePath(cfg.ProfilesDir(), name)
		if err != nil {
			return err
		}

		profile, err := recipe.LoadProfile(path)
		if err != nil {
			return err
		}

		out, err := recipe.Render(profile, cfg.TemplatesDir())
		if err != nil {
			return err
		}
		rendered[name] = out
	}

	if renderDryRun {
		for _, name := range names {
			ui.Blue.Printf("--- %s ---\n", name)
			fmt.Print(rendered[name])
			fmt.Println()
		}
		return nil
	}

	if renderCheck {
		return checkRendered(cfg, names, rendered)
	}

	return lock.WithLock(cfg.RecipesDir, "render", func() error {
		snapName, err := snapshot.Create(cfg.RecipesDir)
		if err != nil {
			return fmt.Errorf("snapshot output: %w", err)
		}
		if snapName != "" {
			ui.Snapshot("Saved snapshot %s", snapName)
		}

		for _, name := range names {
			outputPath, err := recipe.WriteOutput(cfg.OutputDir(), name, rendered[name])
			if err != nil {
				return err
			}
			ui.Recipe("%s → %s (%s)", name, outputPath, recipe.Hash(rendered[name])[:12])
		}

		ui.Success("Rendered %d profile(s)", len(names))
		return nil
	})
}

// checkRendered compares freshly rendered recipes against the output tree.
func checkRendered(cfg *config.Config, names []string, rendered map[string]string) error {
	stale := 0
	for _, name := range names {
		outputPath := filepath.Join(cfg.OutputDir(), name, "Dockerfile")
		onDisk, err := os.ReadFile(outputPath)
		if os.IsNotExist(err) {
			ui.Warning("%s: not rendered yet", name)
			stale++
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", outputPath, err)
		}

		if recipe.Hash(string(onDisk)) != recipe.Hash(rendered[name]) {
			ui.Error("%s: output is stale", name)
			stale++
		} else {
			ui.Success("%s: up to date", name)
		}
	}

	if stale > 0 {
		return fmt.Errorf("%d profile(s) out of date; run 'kiln render'", stale)
	}

	return nil
}
