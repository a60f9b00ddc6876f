package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git runs the git CLI scoped to a single directory. Every call is a
// blocking subprocess invocation; the exit code decides success.
type Git struct {
	dir string
}

// NewGit returns a Git client operating inside dir.
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", g.dir}, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

// IsRepo reports whether the directory is the root of its own git
// working tree. Being nested inside some other repository does not
// count: a mirror without a repository of its own must not fall
// through to the enclosing project's repo.
func (g *Git) IsRepo() bool {
	out, err := g.run("rev-parse", "--show-toplevel")
	if err != nil {
		return false
	}
	top, err := filepath.EvalSymlinks(strings.TrimSpace(out))
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return false
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}
	return top == dir
}

// Status returns `git status --porcelain` output.
func (g *Git) Status() (string, error) {
	return g.run("status", "--porcelain")
}

// AddAll stages all changes (`git add -A`).
func (g *Git) AddAll() error {
	_, err := g.run("add", "-A")
	return err
}

// Commit creates a commit with the given message.
func (g *Git) Commit(message string) error {
	_, err := g.run("commit", "-m", message)
	return err
}

// Head resolves the current HEAD commit hash.
func (g *Git) Head() (string, error) {
	out, err := g.run("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
