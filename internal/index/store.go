// Package index locates a project's .tig marker directory and loads the
// persistent index linking conversations to commit snapshots.
//
// The index is written by the session-capture tooling and read-only here.
// Loading is deliberately tolerant: a pristine or corrupted index file
// degrades to an empty index so the query path never fails on bad data.
// Only the absence of a marker directory is fatal.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// MarkerDirName is the directory that roots the provenance system
	// for a project, found by walking up from the working directory.
	MarkerDirName = ".tig"

	// FileName is the index file inside the marker directory.
	FileName = "micro_index.json"
)

// NotFoundError reports that no marker directory exists in the start
// directory or any of its ancestors.
type NotFoundError struct {
	Start string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s directory found in %s or any parent directory", MarkerDirName, e.Start)
}

// Remediation returns a one-line hint for fixing the failure.
func (e *NotFoundError) Remediation() string {
	return "run the tig capture tooling from your project root to create a " + MarkerDirName + " directory"
}

// Locate walks upward from start to the filesystem root and returns the
// path of the nearest .tig marker directory.
func Locate(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", MarkerDirName, err)
	}
	for {
		marker := filepath.Join(dir, MarkerDirName)
		if fi, err := os.Stat(marker); err == nil && fi.IsDir() {
			return marker, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Start: start}
		}
		dir = parent
	}
}

// Load reads the index file inside tigDir.
//
// A missing or unparsable index yields an empty index rather than an
// error: queries against a pristine project resolve to "no provenance",
// they do not fail.
func Load(tigDir string) *Index {
	data, err := os.ReadFile(filepath.Join(tigDir, FileName))
	if err != nil {
		return NewIndex()
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return NewIndex()
	}

	// Nil maps from sparse files behave like empty ones.
	if idx.Conversations == nil {
		idx.Conversations = map[string]Conversation{}
	}
	if idx.Snapshots == nil {
		idx.Snapshots = map[string]Snapshot{}
	}
	if idx.FileIndex == nil {
		idx.FileIndex = map[string]json.RawMessage{}
	}
	return &idx
}
