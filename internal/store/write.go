package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Batch is one recorded reconciliation run.
type Batch struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	CommitHash string `json:"commit_hash"`
	Modified   int    `json:"modified"`
	Added      int    `json:"added"`
	Deleted    int    `json:"deleted"`
	Failed     int    `json:"failed"`
	Message    string `json:"message"`
}

// NewBatchID generates a time-ordered batch identifier (UUIDv7), so
// lexicographic ID order matches creation order.
func NewBatchID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordBatch inserts a sync batch into the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) RecordBatch(ctx context.Context, b Batch) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_batches
		(id, created_at, commit_hash, modified, added, deleted, failed, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		b.ID,
		b.CreatedAt,
		b.CommitHash,
		b.Modified,
		b.Added,
		b.Deleted,
		b.Failed,
		b.Message,
	)
	if err != nil {
		return fmt.Errorf("record batch: %w", err)
	}

	return nil
}
