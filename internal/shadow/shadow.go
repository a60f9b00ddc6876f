// Package shadow reads the per-file append-only history logs kept under
// the marker directory's shadow/ subtree.
package shadow

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DirName is the subtree of the marker directory holding shadow files.
const DirName = "shadow"

// Entry is one conversation's interaction with a tracked file.
// Entries are appended by the session-capture tooling, one per
// conversation that touched the file.
//
// ToolOperations elements are kept untyped: capture tools have written
// both object records and plain strings, and a strict element type
// would discard the whole entry on unmarshal.
type Entry struct {
	ConversationID string `json:"conversation_id"`
	UserPrompt     string `json:"user_prompt"`
	AIResponse     string `json:"ai_response"`
	ToolOperations []any  `json:"tool_operations"`
	Timestamp      string `json:"timestamp"`
}

// File is the on-disk shape of a shadow file.
type File struct {
	History []Entry `json:"history"`
}

// PathFor derives the shadow file path for a tracked file. Only the base
// name participates: the original file's directory structure is not part
// of the shadow layout.
func PathFor(tigDir, filePath string) string {
	return filepath.Join(tigDir, DirName, filepath.Base(filePath)+".json")
}

// Read returns the first history entry for filePath recorded under
// conversationID. When a conversation touched the file more than once the
// earliest record wins (history order is preserved from storage).
//
// A missing or unparsable shadow file, or one with no matching entry,
// yields a zero Entry; callers treat that as "no shadow context".
func Read(tigDir, filePath, conversationID string) Entry {
	if conversationID == "" {
		return Entry{}
	}

	data, err := os.ReadFile(PathFor(tigDir, filePath))
	if err != nil {
		return Entry{}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return Entry{}
	}

	for _, e := range f.History {
		if e.ConversationID == conversationID {
			return e
		}
	}
	return Entry{}
}
