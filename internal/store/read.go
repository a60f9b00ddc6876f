package store

import (
	"context"
	"fmt"
)

// RecentBatches returns up to limit batches, newest first.
// Ordering is deterministic: created_at DESC, then id DESC (IDs are
// time-ordered UUIDv7, so ties within one timestamp stay stable).
//
// Returns an empty slice (not nil) when the journal has no rows.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, commit_hash, modified, added, deleted, failed, message
		FROM sync_batches
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	batches := []Batch{}
	for rows.Next() {
		var b Batch
		if err := rows.Scan(
			&b.ID,
			&b.CreatedAt,
			&b.CommitHash,
			&b.Modified,
			&b.Added,
			&b.Deleted,
			&b.Failed,
			&b.Message,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	return batches, nil
}
