package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tig/internal/testutil"
)

func TestLocate_FindsNearestMarker(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "project")
	nested := filepath.Join(project, "src", "deep")
	require.NoError(t, os.MkdirAll(filepath.Join(project, MarkerDirName), 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	tigDir, err := Locate(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, MarkerDirName), tigDir)
}

func TestLocate_PrefersClosestAncestor(t *testing.T) {
	root := t.TempDir()
	outer := filepath.Join(root, "outer")
	inner := filepath.Join(outer, "inner")
	require.NoError(t, os.MkdirAll(filepath.Join(outer, MarkerDirName), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(inner, MarkerDirName), 0o755))

	tigDir, err := Locate(inner)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(inner, MarkerDirName), tigDir)
}

func TestLocate_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir)
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Error(), MarkerDirName)
	assert.NotEmpty(t, notFound.Remediation())
}

func TestLocate_IgnoresMarkerFile(t *testing.T) {
	// A plain file named .tig is not a marker directory.
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, MarkerDirName), "not a directory")

	_, err := Locate(dir)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestLoad_MissingIndexIsEmpty(t *testing.T) {
	idx := Load(t.TempDir())

	require.NotNil(t, idx)
	assert.Empty(t, idx.Conversations)
	assert.Empty(t, idx.Snapshots)
	assert.Empty(t, idx.FileIndex)
	assert.Zero(t, idx.LastConversationID)
	assert.Zero(t, idx.LastSnapshotID)
}

func TestLoad_CorruptIndexIsEmpty(t *testing.T) {
	tigDir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(tigDir, FileName), "{not json")

	idx := Load(tigDir)

	require.NotNil(t, idx)
	assert.Empty(t, idx.Snapshots)
	assert.NotNil(t, idx.Conversations)
}

func TestLoad_ParsesRecords(t *testing.T) {
	tigDir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(tigDir, FileName), `{
		"conversations": {
			"1": {"id": "1", "prompt": "add auth", "start_time": "2025-03-14T09:26:53Z", "responses": ["done"]}
		},
		"snapshots": {
			"1": {"id": "1", "commit": "deadbeef01", "conversation_id": "1", "timestamp": "T1", "file_path": "/tmp/p/auth.js"}
		},
		"last_conversation_id": 1,
		"last_snapshot_id": 1,
		"file_index": {"auth.js": {"shadow": "auth.js.json"}}
	}`)

	idx := Load(tigDir)

	conv := idx.Conversations["1"]
	assert.Equal(t, "add auth", conv.Prompt)
	assert.Equal(t, []string{"done"}, conv.Responses)

	snap := idx.Snapshots["1"]
	assert.Equal(t, "deadbeef01", snap.Commit)
	assert.Equal(t, "1", snap.ConversationID)
	assert.Equal(t, "T1", snap.Timestamp)
	assert.Equal(t, "/tmp/p/auth.js", snap.FilePath)

	assert.Equal(t, 1, idx.LastConversationID)
	assert.Contains(t, idx.FileIndex, "auth.js")
}

func TestLoad_SparseFileGetsEmptyMaps(t *testing.T) {
	tigDir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(tigDir, FileName), `{"last_snapshot_id": 3}`)

	idx := Load(tigDir)

	assert.Equal(t, 3, idx.LastSnapshotID)
	assert.NotNil(t, idx.Conversations)
	assert.NotNil(t, idx.Snapshots)
	assert.NotNil(t, idx.FileIndex)
}
