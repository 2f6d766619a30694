package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
)

type document struct {
	Version   int                      `json:"version"`
	Timing    []models.TimingRecord    `json:"timing"`
	Completed []models.CompletedRecord `json:"completed"`
}

type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("store already initialized at %s", s.path)
	}

	s.doc = &document{Version: 1}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Fresh install: both tables read as empty until first write.
			s.doc = &document{Version: 1}
			return nil
		}
		return fmt.Errorf("failed to read store: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse store: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}

	return nil
}

func (s *JSONStore) ReadTiming() ([]models.TimingRecord, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("store not loaded")
	}

	rows := make([]models.TimingRecord, len(s.doc.Timing))
	copy(rows, s.doc.Timing)
	return rows, nil
}

func (s *JSONStore) AppendTiming(rec models.TimingRecord) error {
	if s.doc == nil {
		return fmt.Errorf("store not loaded")
	}

	s.doc.Timing = append(s.doc.Timing, rec)
	return s.save()
}

func (s *JSONStore) ReplaceTiming(rows []models.TimingRecord) error {
	if s.doc == nil {
		return fmt.Errorf("store not loaded")
	}

	s.doc.Timing = make([]models.TimingRecord, len(rows))
	copy(s.doc.Timing, rows)
	return s.save()
}

func (s *JSONStore) ReadCompleted() ([]models.CompletedRecord, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("store not loaded")
	}

	rows := make([]models.CompletedRecord, len(s.doc.Completed))
	copy(rows, s.doc.Completed)
	return rows, nil
}

func (s *JSONStore) AppendCompleted(rec models.CompletedRecord) error {
	if s.doc == nil {
		return fmt.Errorf("store not loaded")
	}

	s.doc.Completed = append(s.doc.Completed, rec)
	return s.save()
}

func (s *JSONStore) Tables() ([]string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return []string{}, nil
	}
	return []string{constants.TableTiming, constants.TableCompleted}, nil
}

func (s *JSONStore) GetStorePath() string {
	return s.path
}
