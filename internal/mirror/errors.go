package mirror

import "fmt"

// SyncError represents a failure that stops a sync batch.
//
// Setup failures (missing mirror, not a repo, dirty tree) are detected
// before any file is touched. ALL_OPS_FAILED and COMMIT_FAILED occur
// after the write phase has started; in both cases no commit is created.
type SyncError struct {
	// Code identifies the failure category.
	Code SyncErrorCode

	// Message is a human-readable description.
	Message string

	// Hint is a one-line remediation suggestion, may be empty.
	Hint string

	// Err is the underlying error, if any.
	Err error
}

// SyncErrorCode categorizes sync failures.
type SyncErrorCode string

const (
	// ErrCodeMirrorMissing indicates the mirror directory does not exist.
	ErrCodeMirrorMissing SyncErrorCode = "MIRROR_MISSING"

	// ErrCodeNotARepo indicates the mirror is not a version-control
	// working tree.
	ErrCodeNotARepo SyncErrorCode = "NOT_A_REPO"

	// ErrCodeDirtyMirror indicates the mirror has uncommitted changes
	// and no force override was given.
	ErrCodeDirtyMirror SyncErrorCode = "DIRTY_MIRROR"

	// ErrCodeAllOpsFailed indicates every attempted file operation
	// failed, so no commit was created.
	ErrCodeAllOpsFailed SyncErrorCode = "ALL_OPS_FAILED"

	// ErrCodeCommitFailed indicates the stage or commit step failed.
	ErrCodeCommitFailed SyncErrorCode = "COMMIT_FAILED"
)

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// Remediation returns the one-line hint for fixing the failure.
func (e *SyncError) Remediation() string {
	return e.Hint
}
