package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tallyhq/tally/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS timing (
	id TEXT PRIMARY KEY,
	project_name TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL DEFAULT '',
	stop_time TEXT NOT NULL DEFAULT '',
	overall_time TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS completed (
	project_name TEXT NOT NULL,
	total_time TEXT NOT NULL,
	completed_date TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return s.open()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create store schema: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) ReadTiming() ([]models.TimingRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not loaded")
	}

	// rowid order matches insertion order, which keeps first-seen
	// project ordering stable across reads.
	rows, err := s.db.Query(`SELECT id, project_name, start_time, stop_time, overall_time FROM timing ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing table: %w", err)
	}
	defer rows.Close()

	var records []models.TimingRecord
	for rows.Next() {
		var rec models.TimingRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectName, &rec.StartTime, &rec.StopTime, &rec.OverallTime); err != nil {
			return nil, fmt.Errorf("failed to scan timing row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) AppendTiming(rec models.TimingRecord) error {
	if s.db == nil {
		return fmt.Errorf("store not loaded")
	}

	_, err := s.db.Exec(
		`INSERT INTO timing (id, project_name, start_time, stop_time, overall_time) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectName, rec.StartTime, rec.StopTime, rec.OverallTime,
	)
	if err != nil {
		return fmt.Errorf("failed to append timing row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReplaceTiming(records []models.TimingRecord) error {
	if s.db == nil {
		return fmt.Errorf("store not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM timing`); err != nil {
		return fmt.Errorf("failed to clear timing table: %w", err)
	}

	for _, rec := range records {
		if _, err := tx.Exec(
			`INSERT INTO timing (id, project_name, start_time, stop_time, overall_time) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, rec.ProjectName, rec.StartTime, rec.StopTime, rec.OverallTime,
		); err != nil {
			return fmt.Errorf("failed to insert timing row: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ReadCompleted() ([]models.CompletedRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not loaded")
	}

	rows, err := s.db.Query(`SELECT project_name, total_time, completed_date FROM completed ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to read completed table: %w", err)
	}
	defer rows.Close()

	var records []models.CompletedRecord
	for rows.Next() {
		var rec models.CompletedRecord
		if err := rows.Scan(&rec.ProjectName, &rec.TotalTime, &rec.CompletedDate); err != nil {
			return nil, fmt.Errorf("failed to scan completed row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) AppendCompleted(rec models.CompletedRecord) error {
	if s.db == nil {
		return fmt.Errorf("store not loaded")
	}

	_, err := s.db.Exec(
		`INSERT INTO completed (project_name, total_time, completed_date) VALUES (?, ?, ?)`,
		rec.ProjectName, rec.TotalTime, rec.CompletedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to append completed row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Tables() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not loaded")
	}

	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (s *SQLiteStore) GetStorePath() string {
	return s.path
}
