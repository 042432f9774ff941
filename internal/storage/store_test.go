package storage

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListGames(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordGame("AB12", `[{"id":"p1","placement":1}]`); err != nil {
		t.Fatalf("record game: %v", err)
	}
	if err := s.RecordGame("CD34", `[{"id":"p2","placement":1}]`); err != nil {
		t.Fatalf("record game: %v", err)
	}

	rows, err := s.ListRecent(10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 games, got %d", len(rows))
	}
	// Newest first
	if rows[0].RoomCode != "CD34" || rows[1].RoomCode != "AB12" {
		t.Fatalf("unexpected order: %s, %s", rows[0].RoomCode, rows[1].RoomCode)
	}
	if rows[0].FinishedAt.IsZero() {
		t.Fatal("expected non-zero FinishedAt")
	}
}

func TestListRecentLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.RecordGame("ROOM", "[]"); err != nil {
			t.Fatalf("record game: %v", err)
		}
	}
	rows, err := s.ListRecent(3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 games, got %d", len(rows))
	}
}

func TestListRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	rows, err := s.ListRecent(10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no games, got %d", len(rows))
	}
}

// Same room code can finish multiple games; codes are reused over time.
func TestRecordGameDuplicateCodes(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordGame("AB12", "[]"); err != nil {
		t.Fatalf("record game: %v", err)
	}
	if err := s.RecordGame("AB12", "[]"); err != nil {
		t.Fatalf("record game with reused code: %v", err)
	}
}
