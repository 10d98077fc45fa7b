package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/michaelssim/soundbuddy/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func session(bpm int, start time.Time, d time.Duration) Session {
	return Session{
		BPM:       bpm,
		PeriodMS:  int64(60000 / bpm),
		StartedAt: start,
		EndedAt:   start.Add(d),
		Pulses:    int64(d / (time.Minute / time.Duration(bpm))),
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	for i, bpm := range []int{60, 120, 92} {
		id, err := store.SaveSession(session(bpm, base.Add(time.Duration(i)*time.Hour), time.Minute))
		if err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
		if id == "" {
			t.Error("SaveSession() returned empty ID")
		}
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}

	// Newest first
	if sessions[0].BPM != 92 || sessions[2].BPM != 60 {
		t.Errorf("Sessions not ordered newest first: %+v", sessions)
	}
	if !sessions[0].StartedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("StartedAt round-trip = %v", sessions[0].StartedAt)
	}
	if sessions[0].Duration() != time.Minute {
		t.Errorf("Duration() = %v, expected 1m", sessions[0].Duration())
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		store.SaveSession(session(100, base.Add(time.Duration(i)*time.Minute), time.Second))
	}

	sessions, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions with limit, got %d", len(sessions))
	}
}

func TestTempoStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveSession(session(120, base, 2*time.Minute))
	store.SaveSession(session(120, base.Add(time.Hour), 3*time.Minute))
	store.SaveSession(session(60, base.Add(2*time.Hour), time.Minute))

	stats, err := store.TempoStats()
	if err != nil {
		t.Fatalf("TempoStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 tempo rows, got %d", len(stats))
	}

	top := stats[0]
	if top.BPM != 120 || top.Sessions != 2 || top.Total != 5*time.Minute || top.Pulses != 600 {
		t.Errorf("Unexpected top row: %+v", top)
	}
	if !top.LastUsed.Equal(base.Add(time.Hour)) {
		t.Errorf("LastUsed = %v", top.LastUsed)
	}

	total, err := store.TotalPractice()
	if err != nil {
		t.Fatalf("TotalPractice() failed: %v", err)
	}
	if total != 6*time.Minute {
		t.Errorf("TotalPractice() = %v, expected 6m", total)
	}
}

func TestRecordSession(t *testing.T) {
	store := openTestStore(t)

	rec := engine.SessionRecord{
		BPM:       208,
		Period:    288 * time.Millisecond,
		StartedAt: base,
		EndedAt:   base.Add(10 * time.Second),
		Pulses:    35,
		Missed:    1,
	}
	if err := store.RecordSession(rec); err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	// Empty sessions are skipped
	if err := store.RecordSession(engine.SessionRecord{BPM: 100, StartedAt: base, EndedAt: base}); err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	sessions, _ := store.RecentSessions(10)
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.BPM != 208 || got.PeriodMS != 288 || got.Pulses != 35 || got.Missed != 1 {
		t.Errorf("Unexpected stored session: %+v", got)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	store.SaveSession(session(100, base, time.Minute))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	sessions, _ := store.RecentSessions(10)
	if len(sessions) != 0 {
		t.Errorf("Expected empty log after Clear, got %d", len(sessions))
	}
	total, _ := store.TotalPractice()
	if total != 0 {
		t.Errorf("TotalPractice() after Clear = %v", total)
	}
}
