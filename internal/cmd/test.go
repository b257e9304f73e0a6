package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/docker"
	"kiln/internal/gitutil"
	"kiln/internal/ui"
)

var (
	testSource  string
	testBranch  string
	testBake    bool
	testPublish []string
)

// testCmd runs the test suite inside a baked image.
var testCmd = &cobra.Command{
	Use:   "test <profile>",
	Short: "Run the test suite in a baked image",
	Long: `Run the project's test suite inside a baked image.

The source checkout is mounted read-only at /outside; the container
clones it and runs tox against the profile's interpreter. The container
exit code becomes the kiln exit code, so CI sees test failures directly.

Examples:
  kiln test qt6-webengine --source ~/src/project
  kiln test qt5-webkit --source https://example.com/project.git --branch main
  kiln test --bake qt6-webengine --source ~/src/project`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVar(&testSource, "source", ".", "Checkout to mount (local path or git URL)")
	testCmd.Flags().StringVar(&testBranch, "branch", "", "Branch for remote sources")
	testCmd.Flags().BoolVar(&testBake, "bake", false, "Bake the image before running")
	testCmd.Flags().StringArrayVarP(&testPublish, "publish", "p", nil, "Publish container ports (docker -p syntax)")

	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sourceDir, cleanup, err := gitutil.ResolveSource(ctx, testSource, testBranch)
	if err != nil {
		return err
	}
	defer cleanup()

	if !gitutil.IsRepo(sourceDir) {
		return fmt.Errorf("source is not a git repository: %s", sourceDir)
	}

	tag := imageTag(name)

	return withDockerClient(ctx, func(client *docker.Client) error {
		if testBake {
			dockerfile, err := loadRecipe(cfg, name, false)
			if err != nil {
				return err
			}
			ui.Bake("Baking %s...", tag)
			if err := client.BuildImage(ctx, dockerfile, tag, os.Stdout); err != nil {
				return err
			}
		}

		ui.Info("Running tests in %s (source: %s)", tag, sourceDir)

		code, err := client.RunTest(ctx, docker.RunOptions{
			Image:     tag,
			SourceDir: sourceDir,
			Publish:   testPublish,
			Output:    os.Stdout,
		})
		if err != nil {
			return err
		}

		if code != 0 {
			ui.Error("Tests failed with exit code %d", code)
			os.Exit(code)
		}

		ui.Success("Tests passed")
		return nil
	})
}
