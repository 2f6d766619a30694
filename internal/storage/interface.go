package storage

import (
	"path/filepath"
	"strings"

	"github.com/tallyhq/tally/internal/models"
)

// Provider is the tabular store holding the Timing and Completed tables.
// A missing store file or table reads as empty, never as an error; the
// file is created by the first write.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Timing table. ReadTiming preserves row insertion order, which
	// the aggregator relies on for first-seen project ordering.
	ReadTiming() ([]models.TimingRecord, error)
	AppendTiming(models.TimingRecord) error
	ReplaceTiming([]models.TimingRecord) error

	// Completed table. Rows are append-only.
	ReadCompleted() ([]models.CompletedRecord, error)
	AppendCompleted(models.CompletedRecord) error

	// Tables lists the logical tables currently present in the store.
	Tables() ([]string, error)

	// Utils
	GetStorePath() string
}

// NewProvider selects a store implementation from the file extension:
// .json gets the JSON store, anything else the SQLite store.
func NewProvider(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
