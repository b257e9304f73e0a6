package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/recipe"
	"kiln/internal/ui"
)

var (
	matrixPython  string
	matrixWorkers int
)

// matrixCmd renders every variable combination and verifies the results.
var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Render every variable combination and verify it",
	Long: `Render every cell of the {unstable, qt6, webengine} matrix and verify
the results.

Each supported combination is rendered twice and the outputs are hashed
to prove determinism. The qt6-without-webengine cells must refuse to
render; the matrix fails if the guard does not trigger.

Exits non-zero if any cell misbehaves.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringVar(&matrixPython, "python", "python3", "Interpreter binary for the matrix profiles")
	matrixCmd.Flags().IntVar(&matrixWorkers, "workers", runtime.NumCPU(), "Concurrent render workers")

	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	// Template overrides apply when run inside a project; outside one the
	// embedded default is verified.
	templatesDir := ""
	if cfg, err := config.Load(); err == nil {
		templatesDir = cfg.TemplatesDir()
	}

	ui.Bake("Verifying the recipe matrix...")
	fmt.Println()

	results, err := recipe.VerifyMatrix(cmd.Context(), matrixPython, templatesDir, matrixWorkers)
	if err != nil {
		return err
	}

	failures := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			ui.Error("%s: %v", res.Name, res.Err)
			failures++
		case !res.Combination.Valid():
			ui.Yellow.Printf("  - %s: unsupported (guard ok)\n", res.Name)
		default:
			ui.Green.Printf("  * %s: %s\n", res.Name, res.Hash[:12])
		}
	}

	fmt.Println()
	if failures > 0 {
		ui.Red.Printf("%d matrix cell(s) failed\n", failures)
		os.Exit(1)
	}

	ui.Success("All matrix cells verified")
	return nil
}
