package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/tig/internal/vcs"
)

// Options configures a sync batch.
type Options struct {
	// Message is the caller-supplied commit message; when empty the
	// message is generated from the change counts. Either way the
	// provenance tag prefix is applied.
	Message string

	// Force skips the clean-working-tree precondition.
	Force bool

	// Log receives one line per file operation and other diagnostics.
	// May be nil.
	Log func(format string, args ...any)
}

// Result reports the outcome of a sync batch.
type Result struct {
	// Applied is the number of file operations that succeeded.
	Applied int

	// Failed is the number of file operations that failed.
	Failed int

	// Committed reports whether a commit was created.
	Committed bool

	// CommitHash is the created commit's identifier, when committed.
	CommitHash string

	// Message is the commit message used, when committed.
	Message string
}

// messagePrefix tags every generated commit as provenance machinery.
const messagePrefix = "tig: "

// Sync applies the detected changes to the mirror and records them as a
// single commit.
//
// Preconditions fail closed before any file is touched: the mirror must
// exist, be a version-control working tree, and be clean unless Force is
// set. During the write phase each file failure is logged and counted
// but does not abort the batch; the commit covers whatever succeeded.
// If every attempted operation failed, no commit is created.
//
// Empty changes are a successful no-op: Sync returns without invoking
// the version-control client at all.
func Sync(projectRoot, mirrorRoot string, changes Changes, client vcs.Client, opts Options) (*Result, error) {
	if changes.Empty() {
		return &Result{}, nil
	}

	if fi, err := os.Stat(mirrorRoot); err != nil || !fi.IsDir() {
		return nil, &SyncError{
			Code:    ErrCodeMirrorMissing,
			Message: fmt.Sprintf("mirror directory %s does not exist", mirrorRoot),
			Hint:    "run the tig capture tooling to create the mirror first",
		}
	}
	if !client.IsRepo() {
		return nil, &SyncError{
			Code:    ErrCodeNotARepo,
			Message: fmt.Sprintf("mirror %s is not a version-control working tree", mirrorRoot),
			Hint:    "initialize it with: git init " + mirrorRoot,
		}
	}
	if !opts.Force {
		status, err := client.Status()
		if err != nil {
			return nil, &SyncError{
				Code:    ErrCodeNotARepo,
				Message: "cannot read mirror status",
				Hint:    "verify the mirror repository is healthy: git -C " + mirrorRoot + " status",
				Err:     err,
			}
		}
		if strings.TrimSpace(status) != "" {
			return nil, &SyncError{
				Code:    ErrCodeDirtyMirror,
				Message: "mirror has uncommitted changes",
				Hint:    "commit or discard the pending mirror changes, or pass --force to fold them in",
			}
		}
	}

	logf := opts.Log
	if logf == nil {
		logf = func(string, ...any) {}
	}

	res := &Result{}
	for _, rel := range append(append([]string{}, changes.Modified...), changes.Added...) {
		src := filepath.Join(projectRoot, filepath.FromSlash(rel))
		dst := filepath.Join(mirrorRoot, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			logf("copy %s failed: %v", rel, err)
			res.Failed++
			continue
		}
		logf("copy %s", rel)
		res.Applied++
	}
	for _, rel := range changes.Deleted {
		dst := filepath.Join(mirrorRoot, filepath.FromSlash(rel))
		err := os.Remove(dst)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logf("delete %s failed: %v", rel, err)
			res.Failed++
			continue
		}
		logf("delete %s", rel)
		res.Applied++
	}

	if res.Applied == 0 {
		return nil, &SyncError{
			Code:    ErrCodeAllOpsFailed,
			Message: fmt.Sprintf("all %d file operation(s) failed, not committing", res.Failed),
			Hint:    "re-run with --verbose to see the per-file errors",
		}
	}

	message := commitMessage(opts.Message, changes)
	if err := client.AddAll(); err != nil {
		return nil, &SyncError{Code: ErrCodeCommitFailed, Message: "staging mirror changes failed", Err: err}
	}
	if err := client.Commit(message); err != nil {
		return nil, &SyncError{Code: ErrCodeCommitFailed, Message: "committing mirror changes failed", Err: err}
	}
	head, err := client.Head()
	if err != nil {
		return nil, &SyncError{Code: ErrCodeCommitFailed, Message: "resolving new mirror commit failed", Err: err}
	}

	res.Committed = true
	res.CommitHash = head
	res.Message = message
	return res, nil
}

// commitMessage applies the provenance tag to the caller's message, or
// generates a summary of the change counts.
func commitMessage(message string, changes Changes) string {
	if message != "" {
		return messagePrefix + message
	}
	return messagePrefix + "sync: " + changes.Summary()
}

// copyFile copies src to dst byte-for-byte, creating parent directories
// as needed.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
