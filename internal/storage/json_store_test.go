package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func newTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tally.json")
	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return store, path
}

func TestJSONStoreMissingFileReadsEmpty(t *testing.T) {
	store, path := newTestJSONStore(t)

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

	// Loading must not create the file.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Load() created the store file")
	}

	tables, err := store.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Tables() on fresh store = %v, want empty", tables)
	}
}

func TestJSONStoreAppendAndReplace(t *testing.T) {
	store, path := newTestJSONStore(t)

	recs := []models.TimingRecord{
		{ID: "1", ProjectName: "Alpha", StartTime: "2026-01-20 10:00:00", StopTime: "2026-01-20 10:02:30", OverallTime: "00:02:30"},
		{ID: "2", ProjectName: "Beta", StartTime: "2026-01-20 11:00:00", StopTime: "2026-01-20 11:01:00", OverallTime: "00:01:00"},
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
	if len(got) != 2 || got[0] != recs[0] || got[1] != recs[1] {
		t.Errorf("ReadTiming() = %+v, want %+v", got, recs)
	}

	// Append persists: a second store over the same file sees the rows.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err = reopened.ReadTiming()
	if err != nil {
		t.Fatalf("ReadTiming() after reopen error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadTiming() after reopen = %d rows, want 2", len(got))
	}

	if err := store.ReplaceTiming([]models.TimingRecord{recs[1]}); err != nil {
		t.Fatalf("ReplaceTiming() error = %v", err)
	}
	got, err = store.ReadTiming()
	if err != nil {
		t.Fatalf("ReadTiming() error = %v", err)
	}
	if len(got) != 1 || got[0] != recs[1] {
		t.Errorf("ReplaceTiming() left %+v, want [%+v]", got, recs[1])
	}

	tables, err := store.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if len(tables) != 2 {
		t.Errorf("Tables() = %v, want timing and completed", tables)
	}
}

func TestJSONStoreCompleted(t *testing.T) {
	store, _ := newTestJSONStore(t)

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
}

func TestJSONStoreInitRefusesExisting(t *testing.T) {
	store, path := newTestJSONStore(t)

	if err := store.AppendTiming(models.TimingRecord{ProjectName: "Alpha"}); err != nil {
		t.Fatalf("AppendTiming() error = %v", err)
	}

	fresh := NewJSONStore(path)
	if err := fresh.Init(); err == nil {
		t.Errorf("Init() over an existing store succeeded, want error")
	}
}

func TestNewProviderSelectsByExtension(t *testing.T) {
	if _, ok := NewProvider("/tmp/x.json").(*JSONStore); !ok {
		t.Errorf("NewProvider(.json) did not return a JSONStore")
	}
	if _, ok := NewProvider("/tmp/x.db").(*SQLiteStore); !ok {
		t.Errorf("NewProvider(.db) did not return a SQLiteStore")
	}
}
