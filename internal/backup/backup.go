package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/logger"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int // same-second collision counter, higher means newer
}

// Manager copies the store file into an archive directory before every
// mutation. Backup names follow <app>-<DDMMYYYY>-<HH>-<mm>-<ss><ext>.
type Manager struct {
	storePath  string
	archiveDir string
	maxBackups int
	now        func() time.Time
}

// NewManager creates a backup manager archiving beside the store file.
func NewManager(storePath string) *Manager {
	return NewManagerWithOptions(storePath, constants.ArchiveDirName, constants.MaxBackups)
}

// NewManagerWithOptions creates a backup manager with an explicit archive
// directory name and retention limit.
func NewManagerWithOptions(storePath, archiveDirName string, maxBackups int) *Manager {
	if archiveDirName == "" {
		archiveDirName = constants.ArchiveDirName
	}
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	return &Manager{
		storePath:  storePath,
		archiveDir: filepath.Join(filepath.Dir(storePath), archiveDirName),
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

// GetArchiveDir returns the archive directory path
func (m *Manager) GetArchiveDir() string {
	return m.archiveDir
}

func (m *Manager) ensureArchiveDir() error {
	return os.MkdirAll(m.archiveDir, 0700)
}

func (m *Manager) ext() string {
	ext := filepath.Ext(m.storePath)
	if ext == "" {
		ext = ".bak"
	}
	return ext
}

// CreateBackup copies the store into the archive directory and returns the
// backup path. A store file that does not exist yet is a no-op success
// (fresh install: there is nothing to lose), reported as an empty path.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", nil
	}

	if err := m.ensureArchiveDir(); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	stamp := m.now().Format(constants.BackupStampFormat)
	backupName := fmt.Sprintf("%s-%s%s", constants.AppName, stamp, m.ext())
	backupPath := filepath.Join(m.archiveDir, backupName)

	// Same-second collision: add a counter.
	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupName = fmt.Sprintf("%s-%s-%d%s", constants.AppName, stamp, counter, m.ext())
		backupPath = filepath.Join(m.archiveDir, backupName)
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	if err := copyFile(m.storePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy store: %w", err)
	}

	if err := m.rotateBackups(); err != nil {
		// Rotation trouble must not fail the backup itself.
		logger.Warn("Failed to rotate old backups", "error", err)
	}

	return backupPath, nil
}

// ListBackups returns all backups in the archive, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.archiveDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	prefix := constants.AppName + "-"
	suffix := m.ext()

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}

		stampStr := strings.TrimPrefix(name, prefix)
		stampStr = strings.TrimSuffix(stampStr, suffix)

		// Split off a trailing collision counter (DDMMYYYY-HH-mm-ss-N).
		seq := 0
		parts := strings.Split(stampStr, "-")
		if len(parts) == 5 {
			n, err := strconv.Atoi(parts[4])
			if err != nil {
				continue
			}
			seq = n
			stampStr = strings.Join(parts[:4], "-")
		}

		timestamp, err := time.Parse(constants.BackupStampFormat, stampStr)
		if err != nil {
			// Not one of ours, skip.
			continue
		}

		path := filepath.Join(m.archiveDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	// Same-second backups tie on timestamp; the counter breaks the tie so
	// ordering and the rotation victims stay deterministic.
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= m.maxBackups {
		return nil
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the store file with a backup copy. The current
// store is backed up first.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		preRestore, err := m.CreateBackup()
		if err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		logger.Info("Backed up current store before restore", "path", preRestore)
	}

	// Copy to a temp file beside the store, then rename atomically.
	tempPath := m.storePath + ".restore.tmp"

	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore store: %w", err)
	}

	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	return destFile.Sync()
}
