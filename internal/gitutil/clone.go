// Package gitutil provides source checkout operations for test runs.
package gitutil

import (
	"context"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CloneOptions controls how a source checkout is cloned.
type CloneOptions struct {
	// URL is the repository URL or local path.
	URL string

	// Branch is the branch to check out; empty uses the remote default.
	Branch string

	// Dir is the destination directory.
	Dir string

	// Depth limits history depth; 0 performs a full clone.
	Depth int
}

// CloneSource clones the repository to be test-run inside the container.
// The checkout is later bind-mounted read-only into the container, where
// the recipe's start command clones it again and runs tox.
func CloneSource(ctx context.Context, opts CloneOptions) error {
	cloneOpts := &git.CloneOptions{
		URL:          opts.URL,
		SingleBranch: true,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}
	if opts.Depth > 0 {
		cloneOpts.Depth = opts.Depth
	}

	if _, err := git.PlainCloneContext(ctx, opts.Dir, false, cloneOpts); err != nil {
		return fmt.Errorf("clone %s: %w", opts.URL, err)
	}

	return nil
}

// IsRepo checks if the directory is a git repository.
func IsRepo(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

// IsRemoteURL reports whether s looks like a remote repository URL rather
// than a local path.
func IsRemoteURL(s string) bool {
	for _, prefix := range []string{"https://", "http://", "git@", "ssh://", "git://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ResolveSource returns a local checkout directory for source. Local paths
// are used as-is; remote URLs are shallow-cloned into a temp directory.
// The second return value is a cleanup function.
func ResolveSource(ctx context.Context, source, branch string) (string, func(), error) {
	if !IsRemoteURL(source) {
		if _, err := os.Stat(source); err != nil {
			return "", nil, fmt.Errorf("source checkout not found: %s", source)
		}
		return source, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "kiln-source-*")
	if err != nil {
		return "", nil, fmt.Errorf("create source directory: %w", err)
	}

	err = CloneSource(ctx, CloneOptions{URL: source, Branch: branch, Dir: dir, Depth: 1})
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}

	return dir, func() { os.RemoveAll(dir) }, nil
}
