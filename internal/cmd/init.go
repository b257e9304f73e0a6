package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"kiln/internal/manifest"
	"kiln/internal/recipe"
	"kiln/internal/ui"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a new kiln project",
	Long: `Initialize a new kiln project with the required directory structure
and starter files.

This creates:
  - recipes/profiles/    One profile per supported variable combination
  - recipes/templates/   The recipe template (editable override)
  - recipes/packages/    Package manifests
  - recipes/output/      Rendered Dockerfiles (generated)

If no directory is specified, the current directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initPython string

func init() {
	initCmd.Flags().StringVar(&initPython, "python", "python3", "Interpreter binary for the starter profiles")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	targetDir = absDir

	ui.Bake("Firing up a new kiln project...")
	fmt.Println()

	recipesDir := filepath.Join(targetDir, "recipes")

	// Directory structure
	ui.Info("Creating project structure...")
	dirs := []string{
		filepath.Join(recipesDir, "profiles"),
		filepath.Join(recipesDir, "templates"),
		filepath.Join(recipesDir, "packages"),
		filepath.Join(recipesDir, "output"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	ui.Success("Created directories")

	// One profile per valid matrix cell
	ui.Info("Creating starter profiles...")
	created := 0
	for _, combo := range recipe.AllCombinations() {
		if !combo.Valid() {
			continue
		}

		profile := combo.Profile(initPython)
		data, err := yaml.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal profile %s: %w", profile.Name, err)
		}

		path := filepath.Join(recipesDir, "profiles", profile.Name+".yml")
		if err := createFileIfNotExists(path, string(data)); err != nil {
			return fmt.Errorf("create profile %s: %w", profile.Name, err)
		}
		created++
	}
	ui.Success("Created %d profiles", created)

	// Template override seeded from the embedded default
	templatePath := filepath.Join(recipesDir, "templates", recipe.TemplateName)
	if err := createFileIfNotExists(templatePath, recipe.DefaultTemplate()); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	ui.Success("Created recipe template")

	// Test tooling manifest
	tools := manifest.DefaultTestToolsManifest()
	var toolsContent string
	for _, pkg := range tools.Packages {
		toolsContent += pkg + "\n"
	}
	toolsPath := filepath.Join(recipesDir, "packages", "test-tools.txt")
	if err := createFileIfNotExists(toolsPath, toolsContent); err != nil {
		return fmt.Errorf("create test-tools manifest: %w", err)
	}
	ui.Success("Created test-tools manifest")

	// .gitignore for generated output
	gitignorePath := filepath.Join(recipesDir, ".gitignore")
	if err := createFileIfNotExists(gitignorePath, "output/\n.kiln/\n"); err != nil {
		return fmt.Errorf("create .gitignore: %w", err)
	}

	fmt.Println()
	ui.Success("Project initialized at %s", targetDir)
	fmt.Println()
	ui.Blue.Println("Next steps:")
	fmt.Println("  kiln render          # render all profiles")
	fmt.Println("  kiln matrix          # verify the full variable matrix")
	fmt.Println("  kiln bake <profile>  # build a test image")

	return nil
}

// createFileIfNotExists writes content to path unless the file already exists.
func createFileIfNotExists(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		ui.Warning("%s already exists, skipping", filepath.Base(path))
		return nil
	}
	return os.WriteFile(path, []byte(content), 0644)
}
