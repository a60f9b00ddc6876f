// Package vcs abstracts the version-control collaborator behind a narrow
// interface so the sync path can be exercised with a fake in tests.
package vcs

// Client is the capability surface the sync path needs from the
// version-control system managing the mirror.
type Client interface {
	// IsRepo reports whether the directory is a working tree.
	IsRepo() bool

	// Status returns the porcelain status output; empty means clean.
	Status() (string, error)

	// AddAll stages every change in the working tree.
	AddAll() error

	// Commit records the staged changes with the given message.
	Commit(message string) error

	// Head returns the full hash of the current HEAD commit.
	Head() (string, error)
}
