// Package blame answers "what produced the state at commit C, file F" by
// joining the index against the per-file shadow history.
package blame

import (
	"sort"
	"strings"

	"github.com/roach88/tig/internal/index"
	"github.com/roach88/tig/internal/shadow"
)

// Record is the resolved provenance for a (commit, file) query.
//
// Found distinguishes "no snapshot matched the commit" from a matched
// snapshot whose surrounding records happen to be empty. UserPrompt and
// Prompt carry the same value; both names exist for caller convenience.
type Record struct {
	Found          bool   `json:"found"`
	ConversationID string `json:"conversation_id"`
	UserPrompt     string `json:"user_prompt"`
	Prompt         string `json:"prompt"`
	AIResponse     string `json:"ai_response"`
	Timestamp      string `json:"timestamp"`
	ToolOperations []any  `json:"tool_operations"`
	CommitHash     string `json:"commit_hash,omitempty"`
	FilePath       string `json:"file_path,omitempty"`
}

// Resolve reconstructs the provenance record for filePath at the commit
// identified by commitHash (a full hash or a prefix).
//
// Missing data is never an error: an unmatched commit, a dangling
// conversation reference, or an absent shadow entry all resolve to empty
// fields. ToolOperations is always non-nil.
func Resolve(idx *index.Index, tigDir, commitHash, filePath string) Record {
	rec := Record{ToolOperations: []any{}}

	snap, ok := findSnapshot(idx, commitHash)
	if !ok {
		return rec
	}

	rec.Found = true
	rec.ConversationID = snap.ConversationID
	rec.CommitHash = snap.Commit
	rec.FilePath = filePath

	// Zero-value Conversation when the reference dangles.
	conv := idx.Conversations[snap.ConversationID]
	entry := shadow.Read(tigDir, filePath, snap.ConversationID)

	rec.UserPrompt = conv.Prompt
	rec.Prompt = conv.Prompt

	switch {
	case entry.AIResponse != "":
		rec.AIResponse = entry.AIResponse
	case len(conv.Responses) > 0:
		rec.AIResponse = conv.Responses[0]
	}

	rec.Timestamp = snap.Timestamp
	if rec.Timestamp == "" {
		rec.Timestamp = conv.StartTime
	}

	// Tool operations only exist in the shadow log.
	if entry.ToolOperations != nil {
		rec.ToolOperations = entry.ToolOperations
	}
	return rec
}

// findSnapshot scans snapshots in lexicographic ID order and returns the
// first whose commit equals or starts with commitHash.
//
// The ordered scan makes prefix ties deterministic: when several
// snapshots share a commit prefix, the lowest snapshot ID wins.
func findSnapshot(idx *index.Index, commitHash string) (index.Snapshot, bool) {
	if commitHash == "" {
		return index.Snapshot{}, false
	}

	ids := make([]string, 0, len(idx.Snapshots))
	for id := range idx.Snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		snap := idx.Snapshots[id]
		if snap.Commit == commitHash || strings.HasPrefix(snap.Commit, commitHash) {
			if snap.ID == "" {
				snap.ID = id
			}
			return snap, true
		}
	}
	return index.Snapshot{}, false
}
