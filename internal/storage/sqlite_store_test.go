package storage

import (
	"path/filepath"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEmptyReads(t *testing.T) {
	store := newTestSQLiteStore(t)

	timing, err := store.ReadTiming()
	if err != nil {
		t.Fatalf("ReadTiming() error = %v", err)
	}
	if len(timing) != 0 {
		t.Errorf("ReadTiming() on fresh store = %+v, want empty", timing)
	}

	completed, err := store.ReadCompleted()
	if err != nil {
		t.Fatalf("ReadCompleted() error = %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("ReadCompleted() on fresh store = %+v, want empty", completed)
	}
}

func TestSQLiteStoreTimingRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	recs := []models.TimingRecord{
		{ID: "a", ProjectName: "Alpha", StartTime: "2026-01-20 10:00:00", StopTime: "2026-01-20 10:02:30", OverallTime: "00:02:30"},
		{ID: "b", ProjectName: "Beta", StartTime: "2026-01-20 11:00:00", StopTime: "2026-01-20 11:01:00", OverallTime: "00:01:00"},
		{ID: "c", ProjectName: "Alpha", StartTime: "2026-01-20 12:00:00", StopTime: "2026-01-20 12:00:30", OverallTime: "00:00:30"},
	}
	for _, rec := range recs {
		if err := store.AppendTiming(rec); err != nil {
			t.Fatalf("AppendTiming() error = %v", err)
		}
	}

	got, err := store.ReadTiming()
	if err != nil {
		t.Fatalf("ReadTiming() error = %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("ReadTiming() = %d rows, want %d", len(got), len(recs))
	}
	// Insertion order must survive the round trip.
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("ReadTiming()[%d] = %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestSQLiteStoreReplaceTiming(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.AppendTiming(models.TimingRecord{ID: "a", ProjectName: "Alpha"}); err != nil {
		t.Fatalf("AppendTiming() error = %v", err)
	}
	if err := store.AppendTiming(models.TimingRecord{ID: "b", ProjectName: "Beta"}); err != nil {
		t.Fatalf("AppendTiming() error = %v", err)
	}

	placeholder := models.TimingRecord{ID: "p"}
	if err := store.ReplaceTiming([]models.TimingRecord{placeholder}); err != nil {
		t.Fatalf("ReplaceTiming() error = %v", err)
	}

	got, err := store.ReadTiming()
	if err != nil {
		t.Fatalf("ReadTiming() error = %v", err)
	}
	if len(got) != 1 || got[0].ProjectName != "" {
		t.Errorf("ReplaceTiming() left %+v, want single empty row", got)
	}
}

func TestSQLiteStoreCompletedAndTables(t *testing.T) {
	store := newTestSQLiteStore(t)

	rec := models.CompletedRecord{ProjectName: "Alpha", TotalTime: "00:02:30", CompletedDate: "2026-01-20"}
	if err := store.AppendCompleted(rec); err != nil {
		t.Fatalf("AppendCompleted() error = %v", err)
	}

	got, err := store.ReadCompleted()
	if err != nil {
		t.Fatalf("ReadCompleted() error = %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Errorf("ReadCompleted() = %+v, want [%+v]", got, rec)
	}

	tables, err := store.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	present := map[string]bool{}
	for _, name := range tables {
		present[name] = true
	}
	if !present["timing"] || !present["completed"] {
		t.Errorf("Tables() = %v, want timing and completed", tables)
	}
}
