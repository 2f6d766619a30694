package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/backup"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/utils"
)

var (
	// ErrInvalidSelection is returned for a selection outside 1..len(projects).
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrEmptyProjectName is returned when a session is started without a name.
	ErrEmptyProjectName = errors.New("project name must not be empty")
)

// Summary is the derived per-project view of the Timing table.
type Summary struct {
	Names  []string                 // distinct names in first-seen row order
	Totals map[string]time.Duration // cumulative duration per name
}

// Aggregate folds Timing rows into a Summary. Rows with empty names are
// excluded; rows whose overall_time does not parse contribute zero but
// still register the project name.
func Aggregate(rows []models.TimingRecord) Summary {
	summary := Summary{
		Names:  []string{},
		Totals: make(map[string]time.Duration),
	}

	for _, row := range rows {
		if row.ProjectName == "" {
			continue
		}

		if _, seen := summary.Totals[row.ProjectName]; !seen {
			summary.Names = append(summary.Names, row.ProjectName)
			summary.Totals[row.ProjectName] = 0
		}

		d, err := utils.ParseHMS(row.OverallTime)
		if err != nil {
			// Unparseable durations are skipped, not surfaced.
			continue
		}
		summary.Totals[row.ProjectName] += d
	}

	return summary
}

// ExcludeProject filters out every row belonging to the named project,
// along with any stray empty-name rows. Complete and Remove share it.
func ExcludeProject(rows []models.TimingRecord, name string) []models.TimingRecord {
	kept := make([]models.TimingRecord, 0, len(rows))
	for _, row := range rows {
		if row.ProjectName == "" || row.ProjectName == name {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// Service runs every tracker operation against a store, taking a backup
// before each mutation. The store path and archive location are carried by
// the injected collaborators, never ambient state.
type Service struct {
	store   storage.Provider
	backups *backup.Manager
	now     func() time.Time
}

func New(store storage.Provider, backups *backup.Manager) *Service {
	return NewWithClock(store, backups, time.Now)
}

// NewWithClock injects the clock used to stamp sessions and completions.
func NewWithClock(store storage.Provider, backups *backup.Manager, now func() time.Time) *Service {
	return &Service{
		store:   store,
		backups: backups,
		now:     now,
	}
}

// Summary aggregates the current Timing table. An absent or empty table
// yields an empty summary, not an error.
func (s *Service) Summary() (Summary, error) {
	rows, err := s.store.ReadTiming()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read timing table: %w", err)
	}
	return Aggregate(rows), nil
}

// Completed returns the archive of finished projects.
func (s *Service) Completed() ([]models.CompletedRecord, error) {
	return s.store.ReadCompleted()
}

// backupStore takes the pre-mutation backup. Any failure aborts the
// enclosing command before it mutates.
func (s *Service) backupStore() error {
	path, err := s.backups.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	if path != "" {
		logger.Debug("Store backed up", "path", path)
	}
	return nil
}

// Session is an open stopwatch. It is created by StartSession, which has
// already taken the backup, and finished by Stop.
type Session struct {
	svc     *Service
	Project string
	Start   time.Time
}

// StartSession backs up the store and starts the stopwatch for a project.
func (s *Service) StartSession(name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}

	if err := s.backupStore(); err != nil {
		return nil, err
	}

	return &Session{
		svc:     s,
		Project: name,
		Start:   s.now(),
	}, nil
}

// Elapsed returns the time the session has been running.
func (sess *Session) Elapsed() time.Duration {
	return sess.svc.now().Sub(sess.Start)
}

// Stop stamps the stop time and appends the session to the Timing table.
// A zero-length session is valid and records 00:00:00.
func (sess *Session) Stop() (models.TimingRecord, error) {
	stop := sess.svc.now()
	rec := models.TimingRecord{
		ID:          uuid.New().String(),
		ProjectName: sess.Project,
		StartTime:   utils.FormatTimestamp(sess.Start),
		StopTime:    utils.FormatTimestamp(stop),
		OverallTime: utils.FormatHMS(stop.Sub(sess.Start)),
	}

	if err := sess.svc.appendSession(rec); err != nil {
		return models.TimingRecord{}, err
	}

	logger.Info("Session recorded", "project", rec.ProjectName, "overall", rec.OverallTime)
	return rec, nil
}

// appendSession adds a finished session. If a header-preserving placeholder
// row is present it no longer has a table to hold open, so it is dropped.
func (s *Service) appendSession(rec models.TimingRecord) error {
	rows, err := s.store.ReadTiming()
	if err != nil {
		return fmt.Errorf("failed to read timing table: %w", err)
	}

	hasPlaceholder := false
	for _, row := range rows {
		if row.IsPlaceholder() {
			hasPlaceholder = true
			break
		}
	}

	if !hasPlaceholder {
		if err := s.store.AppendTiming(rec); err != nil {
			return fmt.Errorf("failed to append timing row: %w", err)
		}
		return nil
	}

	kept := make([]models.TimingRecord, 0, len(rows)+1)
	for _, row := range rows {
		if row.IsPlaceholder() {
			continue
		}
		kept = append(kept, row)
	}
	kept = append(kept, rec)

	if err := s.store.ReplaceTiming(kept); err != nil {
		return fmt.Errorf("failed to rewrite timing table: %w", err)
	}
	return nil
}

// resolve maps a 1-based selection onto the current summary. Selection 0
// is the caller's cancel and never reaches here.
func (s *Service) resolve(selection int) (string, Summary, error) {
	summary, err := s.Summary()
	if err != nil {
		return "", Summary{}, err
	}
	if selection < 1 || selection > len(summary.Names) {
		return "", Summary{}, fmt.Errorf("%w: %d", ErrInvalidSelection, selection)
	}
	return summary.Names[selection-1], summary, nil
}

// writeTiming rewrites the Timing table. An empty table is persisted as a
// single all-empty placeholder row so column headers survive.
func (s *Service) writeTiming(rows []models.TimingRecord) error {
	if len(rows) == 0 {
		rows = []models.TimingRecord{{}}
	}
	if err := s.store.ReplaceTiming(rows); err != nil {
		return fmt.Errorf("failed to rewrite timing table: %w", err)
	}
	return nil
}

// Complete archives the selected project: its cumulative total moves to
// the Completed table and all of its Timing rows are purged.
func (s *Service) Complete(selection int) (models.CompletedRecord, error) {
	name, summary, err := s.resolve(selection)
	if err != nil {
		return models.CompletedRecord{}, err
	}

	if err := s.backupStore(); err != nil {
		return models.CompletedRecord{}, err
	}

	rec := models.CompletedRecord{
		ProjectName:   name,
		TotalTime:     utils.FormatHMS(summary.Totals[name]),
		CompletedDate: utils.FormatDate(s.now()),
	}
	if err := s.store.AppendCompleted(rec); err != nil {
		return models.CompletedRecord{}, fmt.Errorf("failed to append completed row: %w", err)
	}

	rows, err := s.store.ReadTiming()
	if err != nil {
		return models.CompletedRecord{}, fmt.Errorf("failed to read timing table: %w", err)
	}
	if err := s.writeTiming(ExcludeProject(rows, name)); err != nil {
		return models.CompletedRecord{}, err
	}

	logger.Info("Project completed", "project", name, "total", rec.TotalTime)
	return rec, nil
}

// Remove deletes every Timing row for the selected project. Nothing is
// written to the Completed table. The caller is responsible for the
// confirmation step.
func (s *Service) Remove(selection int) (string, error) {
	name, _, err := s.resolve(selection)
	if err != nil {
		return "", err
	}

	if err := s.backupStore(); err != nil {
		return "", err
	}

	rows, err := s.store.ReadTiming()
	if err != nil {
		return "", fmt.Errorf("failed to read timing table: %w", err)
	}
	if err := s.writeTiming(ExcludeProject(rows, name)); err != nil {
		return "", err
	}

	logger.Info("Project removed", "project", name)
	return name, nil
}
