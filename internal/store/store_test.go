package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sync_batches").Scan(&count); err != nil {
		t.Errorf("query failed: %v", err)
	}
}

func TestRecordBatch_Roundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := Batch{
		ID:         NewBatchID(),
		CreatedAt:  "2025-03-14T09:26:53Z",
		CommitHash: "abc123def456",
		Modified:   2,
		Added:      1,
		Failed:     1,
		Message:    "tig: sync: modified 2 file(s), added 1 file(s)",
	}
	if err := s.RecordBatch(ctx, batch); err != nil {
		t.Fatalf("RecordBatch() failed: %v", err)
	}

	batches, err := s.RecentBatches(ctx, 10)
	if err != nil {
		t.Fatalf("RecentBatches() failed: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if batches[0] != batch {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", batches[0], batch)
	}
}

func TestRecordBatch_DuplicateIDIsIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := Batch{ID: NewBatchID(), CreatedAt: "2025-03-14T09:26:53Z", Message: "first"}
	if err := s.RecordBatch(ctx, batch); err != nil {
		t.Fatalf("first RecordBatch() failed: %v", err)
	}

	batch.Message = "second"
	if err := s.RecordBatch(ctx, batch); err != nil {
		t.Fatalf("duplicate RecordBatch() failed: %v", err)
	}

	batches, err := s.RecentBatches(ctx, 10)
	if err != nil {
		t.Fatalf("RecentBatches() failed: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if batches[0].Message != "first" {
		t.Errorf("duplicate insert overwrote the original: %q", batches[0].Message)
	}
}

func TestRecentBatches_NewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	times := []string{
		"2025-03-14T09:00:00Z",
		"2025-03-14T10:00:00Z",
		"2025-03-14T11:00:00Z",
	}
	for _, ts := range times {
		err := s.RecordBatch(ctx, Batch{ID: NewBatchID(), CreatedAt: ts})
		if err != nil {
			t.Fatalf("RecordBatch(%s) failed: %v", ts, err)
		}
	}

	batches, err := s.RecentBatches(ctx, 2)
	if err != nil {
		t.Fatalf("RecentBatches() failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	if batches[0].CreatedAt != times[2] || batches[1].CreatedAt != times[1] {
		t.Errorf("wrong order: %q then %q", batches[0].CreatedAt, batches[1].CreatedAt)
	}
}

func TestRecentBatches_EmptyJournal(t *testing.T) {
	s := openTestStore(t)

	batches, err := s.RecentBatches(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentBatches() failed: %v", err)
	}
	if batches == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(batches) != 0 {
		t.Errorf("got %d batches, want 0", len(batches))
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
