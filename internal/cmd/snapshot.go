package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kiln/internal/config"
	"kiln/internal/snapshot"
	"kiln/internal/ui"
)

var (
	snapshotsRollback string
	snapshotsYes      bool
)

// snapshotsCmd lists and restores output snapshots.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List output snapshots",
	Long: `List snapshots of the rendered output directory.

Snapshots are taken automatically before each render overwrites the
output tree. Use --rollback to restore one; the current output is
backed up first.

Examples:
  kiln snapshots
  kiln snapshots --rollback snapshot-20260825-120000.000000000`,
	Args: cobra.NoArgs,
	RunE: runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVarP(&snapshotsRollback, "rollback", "r", "", "Restore the named snapshot")
	snapshotsCmd.Flags().BoolVarP(&snapshotsYes, "yes", "y", false, "Skip the rollback confirmation prompt")

	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if snapshotsRollback != "" {
		return doRollback(cfg, snapshotsRollback)
	}

	snapshots, err := snapshot.List(cfg.RecipesDir)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		ui.Warning("No snapshots found")
		fmt.Println("Snapshots are created automatically before each render")
		return nil
	}

	ui.Snapshot("Available snapshots:")
	fmt.Println()

	for i, snap := range snapshots {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(snapshots)-10)
			break
		}

		ui.Green.Printf("  %s\n", snap.Name)
		fmt.Printf("    Created: %s\n", snap.Created.Format("2006-01-02 15:04:05"))
		fmt.Printf("    Files: %d\n", snap.FileCount)
		fmt.Println()
	}

	return nil
}

func doRollback(cfg *config.Config, target string) error {
	snapshots, err := snapshot.List(cfg.RecipesDir)
	if err != nil {
		return err
	}

	found := false
	for _, snap := range snapshots {
		if snap.Name == target {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("snapshot not found: %s", target)
	}

	if !snapshotsYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to rollback without confirmation; pass --yes in non-interactive runs")
		}
		if !confirm(fmt.Sprintf("Rollback output to %s?", target)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ui.Yellow.Printf("Rolling back to: %s\n", target)

	if err := snapshot.Restore(cfg.RecipesDir, target); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}

	ui.Success("Rollback complete")
	ui.Yellow.Println("Note: re-bake any images built from the replaced output")
	return nil
}

// confirm prompts for a yes/no answer on stdin.
func confirm(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
