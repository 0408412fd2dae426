// Package gitops records changes to a data directory as git commits.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, nil, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Committer commits everything under a directory with a fixed author.
type Committer struct {
	dir         string
	authorName  string
	authorEmail string
}

// NewCommitter returns a Committer for the repository at dir.
func NewCommitter(dir, authorName, authorEmail string) *Committer {
	return &Committer{dir: dir, authorName: authorName, authorEmail: authorEmail}
}

// Commit stages all files and commits them. A clean tree is not an error.
func (c *Committer) Commit(ctx context.Context, message string) error {
	_, err := c.CommitAll(ctx, message)
	return err
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash, or "" when there was nothing to commit.
func (c *Committer) CommitAll(ctx context.Context, message string) (string, error) {
	env := c.identity()

	if out, err := run(ctx, c.dir, env, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	status, err := run(ctx, c.dir, env, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(status) == "" {
		return "", nil
	}

	author := fmt.Sprintf("%s <%s>", c.authorName, c.authorEmail)
	if out, err := run(ctx, c.dir, env, "commit", "--quiet", "-m", message, "--author", author); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	hash, err := run(ctx, c.dir, env, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(hash), nil
}

// identity sets the committer so commits work without a global git config.
func (c *Committer) identity() []string {
	return []string{
		"GIT_COMMITTER_NAME=" + c.authorName,
		"GIT_COMMITTER_EMAIL=" + c.authorEmail,
	}
}

func run(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
