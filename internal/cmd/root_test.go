package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Execute(t *testing.T) {
	t.Run("root command shows help", func(t *testing.T) {
		_, err := executeCmd(t)
		assert.NoError(t, err)
	})

	t.Run("help flag", func(t *testing.T) {
		output, err := executeCmd(t, "--help")
		assert.NoError(t, err)
		assert.Contains(t, output, "kiln")
		assert.Contains(t, output, "test environments")
	})
}

func TestRootCmd_Structure(t *testing.T) {
	t.Run("has expected subcommands", func(t *testing.T) {
		commands := rootCmd.Commands()
		commandNames := make([]string, 0, len(commands))
		for _, cmd := range commands {
			commandNames = append(commandNames, cmd.Name())
		}

		assert.Contains(t, commandNames, "init")
		assert.Contains(t, commandNames, "render")
		assert.Contains(t, commandNames, "matrix")
		assert.Contains(t, commandNames, "lint")
		assert.Contains(t, commandNames, "packages")
		assert.Contains(t, commandNames, "bake")
		assert.Contains(t, commandNames, "test")
		assert.Contains(t, commandNames, "doctor")
		assert.Contains(t, commandNames, "snapshots")
		assert.Contains(t, commandNames, "update")
		assert.Contains(t, commandNames, "completion")
	})

	t.Run("stoke command is hidden", func(t *testing.T) {
		stokeFound := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == "stoke" {
				stokeFound = true
				assert.True(t, cmd.Hidden)
			}
		}
		assert.True(t, stokeFound, "stoke command should exist")
	})
}

func TestRootCmd_Description(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "RECIPE COMMANDS")
	assert.Contains(t, rootCmd.Long, "PACKAGE COMMANDS")
	assert.Contains(t, rootCmd.Long, "BAKE COMMANDS")
	assert.Contains(t, rootCmd.Long, "DIAGNOSTICS")
}

func TestCompletionCmd(t *testing.T) {
	t.Run("bash completion", func(t *testing.T) {
		_, err := executeCmd(t, "completion", "bash")
		assert.NoError(t, err)
	})

	t.Run("invalid shell", func(t *testing.T) {
		_, err := executeCmd(t, "completion", "invalid")
		assert.Error(t, err)
	})
}
