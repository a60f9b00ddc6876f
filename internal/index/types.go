package index

import "encoding/json"

// Conversation is one captured AI session: the opening prompt and the
// ordered responses appended as the session progressed.
//
// Records are written by the session-capture tooling; this package only
// reads them, so every field is optional and defaults to its zero value.
type Conversation struct {
	ID        string   `json:"id"`
	Prompt    string   `json:"prompt"`
	StartTime string   `json:"start_time"`
	Responses []string `json:"responses"`
}

// Snapshot links one commit to the conversation that produced it.
// A conversation can span several commits, so many snapshots may point
// at the same conversation.
type Snapshot struct {
	ID             string `json:"id"`
	Commit         string `json:"commit"`
	ConversationID string `json:"conversation_id"`
	Timestamp      string `json:"timestamp"`
	FilePath       string `json:"file_path"`
}

// Index is the root aggregate persisted at .tig/micro_index.json.
//
// FileIndex holds capture-tool payloads whose shape is not interpreted
// by the query path; it is kept raw so unknown payloads never break a load.
type Index struct {
	Conversations      map[string]Conversation    `json:"conversations"`
	Snapshots          map[string]Snapshot        `json:"snapshots"`
	LastConversationID int                        `json:"last_conversation_id"`
	LastSnapshotID     int                        `json:"last_snapshot_id"`
	FileIndex          map[string]json.RawMessage `json:"file_index"`
}

// NewIndex returns an empty index with all maps allocated.
func NewIndex() *Index {
	return &Index{
		Conversations: map[string]Conversation{},
		Snapshots:     map[string]Snapshot{},
		FileIndex:     map[string]json.RawMessage{},
	}
}
