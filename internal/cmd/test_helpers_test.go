package cmd

import (
	"bytes"
	"testing"
)

// executeCmd executes the root command with the given args and returns the output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// initProject scaffolds a project in a temp dir and chdirs into it.
func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := executeCmd(t, "init", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Chdir(dir)
	return dir
}
