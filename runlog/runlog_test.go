package runlog

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQueryRuns(t *testing.T) {
	s := openStore(t)

	first := &Record{
		StartedAt: time.Unix(1700000000, 0),
		EntryRow:  3, EntryCol: 7,
		Direction: ">",
		Budget:    300, Steps: 120, Copies: 2,
	}
	if err := s.RecordRun(first); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("record ID not assigned")
	}

	second := &Record{EntryRow: 0, EntryCol: 0, Direction: "^", Budget: 300, Steps: 300}
	if err := s.RecordRun(second); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if second.StartedAt.IsZero() {
		t.Error("zero StartedAt not filled in")
	}

	runs, err := s.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].ID != second.ID {
		t.Errorf("first result ID = %d, want %d", runs[0].ID, second.ID)
	}
	got := runs[1]
	if got.EntryRow != 3 || got.EntryCol != 7 || got.Direction != ">" {
		t.Errorf("entry = (%d, %d) %s, want (3, 7) >", got.EntryRow, got.EntryCol, got.Direction)
	}
	if got.Budget != 300 || got.Steps != 120 || got.Copies != 2 {
		t.Errorf("accounting = %d/%d/%d, want 300/120/2", got.Budget, got.Steps, got.Copies)
	}
	if !got.StartedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("started at = %v, want %v", got.StartedAt, time.Unix(1700000000, 0))
	}
}

func TestRecentRunsLimit(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		if err := s.RecordRun(&Record{Direction: "v", Budget: 10, Steps: i}); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := s.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}

	n, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.RecordRun(&Record{Direction: "<", Budget: 1, Steps: 1}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	n, err := s2.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count after reopen = %d, want 1", n)
	}
}
