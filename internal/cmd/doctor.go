package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/docker"
	"kiln/internal/preflight"
	"kiln/internal/recipe"
	"kiln/internal/ui"
)

const dockerPingTimeout = 5 * time.Second

// doctorCmd runs pre-flight checks.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Pre-flight checks for required tooling",
	Long:  "Run diagnostic checks for Docker, Git, the project layout, and the recipe template.",
	Args:  cobra.NoArgs,
	Run:   runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	ui.Blue.Println("Running pre-flight checks...")
	fmt.Println()

	passed := 0
	failed := 0
	warned := 0

	// Required and optional binaries
	warnings, errors := preflight.CheckAll()
	for _, msg := range errors {
		ui.Red.Printf("  x %s\n", msg)
		failed++
	}
	for _, msg := range warnings {
		ui.Yellow.Printf("  ! %s\n", msg)
		warned++
	}
	if len(errors) == 0 {
		ui.Green.Println("  * Required binaries present")
		passed++
	}

	// Docker daemon reachable
	if preflight.IsBinaryAvailable("docker") {
		ctx, cancel := context.WithTimeout(context.Background(), dockerPingTimeout)
		client, err := docker.NewClient()
		if err == nil {
			if err := client.Ping(ctx); err == nil {
				ui.Green.Println("  * Docker daemon is running")
				passed++
			} else {
				ui.Red.Println("  x Docker daemon is not responding")
				failed++
			}
			client.Close()
		} else {
			ui.Red.Println("  x Docker daemon is not reachable")
			failed++
		}
		cancel()
	}

	// Project layout
	cfg, err := config.Load()
	if err == nil {
		ui.Green.Printf("  * Project root found: %s\n", cfg.Root)
		passed++

		profiles, err := recipe.ListProfiles(cfg.ProfilesDir())
		if err == nil && len(profiles) > 0 {
			ui.Green.Printf("  * Found %d profile(s)\n", len(profiles))
			passed++
		} else {
			ui.Yellow.Println("  ! No profiles found (run 'kiln init')")
			warned++
		}
	} else {
		ui.Yellow.Println("  ! Project root not found (run from a kiln project, or 'kiln init')")
		warned++
	}

	// Embedded template parses
	if _, err := recipe.Render(recipe.Combination{WebEngine: true}.Profile("python3"), ""); err == nil {
		ui.Green.Println("  * Recipe template renders")
		passed++
	} else {
		ui.Red.Printf("  x Recipe template broken: %v\n", err)
		failed++
	}

	// Summary
	fmt.Println()
	fmt.Printf("Summary: ")
	ui.Green.Printf("%d passed", passed)
	fmt.Printf(", ")
	ui.Yellow.Printf("%d warnings", warned)
	fmt.Printf(", ")
	ui.Red.Printf("%d failed\n", failed)

	if failed > 0 {
		fmt.Println()
		ui.Red.Println("Fix errors above before baking.")
		os.Exit(1)
	} else if warned > 0 {
		fmt.Println()
		ui.Yellow.Println("Usable, but check warnings.")
	} else {
		fmt.Println()
		ui.Green.Println("All systems go!")
	}
}
