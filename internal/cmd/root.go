// Package cmd provides the CLI commands for kiln.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"kiln/internal/ui"
)

const version = "0.3.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "Bake reproducible container test environments",
	Long: `kiln - reproducible container test environments

Renders parameterized build recipes for browser test containers and
bakes them into images that run the project's test suite.

SETUP
  init                  Scaffold a new kiln project

RECIPE COMMANDS
  render [profile...]   Render profiles into Dockerfiles
    --dry-run, -n       Print rendered output without writing
    --check             Verify rendered output matches what is on disk
  matrix                Render every variable combination and verify it
    --python <bin>      Interpreter binary for the matrix profiles
    --workers <n>       Concurrent render workers
  lint                  Validate profiles, manifests, and the template

PACKAGE COMMANDS
  packages [manifest]   Validate package manifests
    --list, -l          List packages in each manifest

BAKE COMMANDS
  bake <profile>        Build the rendered recipe into an image
  test <profile>        Run the test suite in a baked image
    --source <path>     Checkout to mount (local path or git URL)
    --branch <name>     Branch for remote sources

DIAGNOSTICS
  doctor                Pre-flight checks for required tooling
  snapshots             List output snapshots
    --rollback <name>   Restore a previous snapshot`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// stokeCmd is the hidden easter egg command.
var stokeCmd = &cobra.Command{
	Use:    "stoke",
	Hidden: true,
	Short:  "Stoke the fire",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Bake("The kiln burns hotter!")
		ui.Blue.Println("Run 'kiln --help' for all commands.")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(stokeCmd)

	rootCmd.SetVersionTemplate("kiln version {{.Version}}\n")
}
