package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/docker"
	"kiln/internal/recipe"
	"kiln/internal/ui"
)

var bakeFresh bool

// bakeCmd builds a rendered recipe into an image.
var bakeCmd = &cobra.Command{
	Use:   "bake <profile>",
	Short: "Build the rendered recipe into an image",
	Long: `Build a profile's rendered Dockerfile into a container image.

The image is tagged kiln/<profile>. By default the recipe already on
disk under recipes/output/ is baked; use --fresh to re-render first.

Examples:
  kiln bake qt6-webengine
  kiln bake --fresh qt5-webkit`,
	Args: cobra.ExactArgs(1),
	RunE: runBake,
}

func init() {
	bakeCmd.Flags().BoolVar(&bakeFresh, "fresh", false, "Re-render the profile before baking")

	rootCmd.AddCommand(bakeCmd)
}

func runBake(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dockerfile, err := loadRecipe(cfg, name, bakeFresh)
	if err != nil {
		return err
	}

	tag := imageTag(name)
	ui.Bake("Baking %s...", tag)

	return withDockerClient(cmd.Context(), func(client *docker.Client) error {
		if err := client.BuildImage(cmd.Context(), dockerfile, tag, os.Stdout); err != nil {
			return err
		}

		ui.Success("Baked %s", tag)
		return nil
	})
}

// loadRecipe returns the Dockerfile text for a profile, either from the
// output tree or freshly rendered.
func loadRecipe(cfg *config.Config, name string, fresh bool) (string, error) {
	if !fresh {
		outputPath := filepath.Join(cfg.OutputDir(), name, "Dockerfile")
		data, err := os.ReadFile(outputPath)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read %s: %w", outputPath, err)
		}
		ui.Warning("%s not rendered yet, rendering now", name)
	}

	path, err := recipe.ProfilePath(cfg.ProfilesDir(), name)
	if err != nil {
		return "", err
	}

	profile, err := recipe.LoadProfile(path)
	if err != nil {
		return "", err
	}

	return recipe.Render(profile, cfg.TemplatesDir())
}
