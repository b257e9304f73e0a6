package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"kiln/internal/config"
	"kiln/internal/manifest"
	"kiln/internal/recipe"
	"kiln/internal/snapshot"
)

// completeProfileNames completes profile names from the project.
func completeProfileNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	profiles, err := recipe.ListProfiles(cfg.ProfilesDir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, p := range profiles {
		if strings.HasPrefix(p, toComplete) {
			names = append(names, p)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeManifestNames completes manifest filenames.
func completeManifestNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	manifests, err := manifest.List(cfg.ManifestsDir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, m := range manifests {
		if strings.HasPrefix(m, toComplete) {
			names = append(names, m)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeSnapshotNames completes snapshot names for rollback.
func completeSnapshotNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	snapshots, err := snapshot.List(cfg.RecipesDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, snap := range snapshots {
		if strings.HasPrefix(snap.Name, toComplete) {
			names = append(names, snap.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers all dynamic completions for commands.
func registerCompletions() {
	renderCmd.ValidArgsFunction = completeProfileNames
	bakeCmd.ValidArgsFunction = completeProfileNames
	testCmd.ValidArgsFunction = completeProfileNames
	packagesCmd.ValidArgsFunction = completeManifestNames

	if err := snapshotsCmd.RegisterFlagCompletionFunc("rollback", completeSnapshotNames); err != nil {
		// Completions are optional
		_ = err
	}
}

func init() {
	// Defer registration until all commands exist
	cobra.OnInitialize(registerCompletions)
}
