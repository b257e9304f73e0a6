package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kiln/internal/ui"
	"kiln/internal/update"
)

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update kiln to the latest version",
	Long: `Update kiln to the latest version from GitHub releases.

This command will:
1. Check for a newer version on GitHub
2. Download the appropriate binary for your platform
3. Replace the current binary with the new version

Examples:
  kiln update           # Update to latest version
  kiln update --check   # Check for updates without installing`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for updates, don't install")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	ui.Blue.Printf("Current version: %s (%s)\n", version, update.PlatformInfo())

	if updateCheckOnly {
		checkForUpdate(cmd)
		return
	}

	performUpdate(cmd)
}

func checkForUpdate(cmd *cobra.Command) {
	ui.Blue.Println("Checking for updates...")

	release, available, err := update.CheckForUpdate(cmd.Context(), version)
	if err != nil {
		ui.Error("Failed to check for updates: %v", err)
		return
	}

	if !available {
		ui.Success("You're running the latest version!")
		return
	}

	ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
	fmt.Println()
	ui.Blue.Println("To update, run: kiln update")
	printChangelog(release.Changelog)
}

func performUpdate(cmd *cobra.Command) {
	ui.Blue.Println("Checking for updates...")

	release, err := update.Update(cmd.Context(), version)
	if err != nil {
		ui.Error("Update failed: %v", err)
		return
	}

	if release == nil {
		ui.Success("You're already running the latest version!")
		return
	}

	fmt.Println()
	ui.Success("Successfully updated to version %s!", release.Version)
	printChangelog(release.Changelog)
	fmt.Println()
	ui.Blue.Println("Restart kiln to use the new version.")
}

func printChangelog(changelog string) {
	if changelog == "" {
		return
	}

	fmt.Println()
	ui.Yellow.Println("What's new:")
	lines := strings.Split(changelog, "\n")
	maxLines := 10
	if len(lines) < maxLines {
		maxLines = len(lines)
	}
	for i := 0; i < maxLines; i++ {
		fmt.Printf("  %s\n", lines[i])
	}
	if len(lines) > maxLines {
		fmt.Printf("  ... (%d more lines)\n", len(lines)-maxLines)
	}
}
