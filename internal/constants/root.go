package constants

// SessionState represents the current state of the TUI menu loop
type SessionState int

const (
	AppName           = "tally"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/tally/tally.json"

	// DateFormat is the calendar date format used for completed projects (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the format used for session start/stop times
	TimestampFormat = "2006-01-02 15:04:05"

	// BackupStampFormat is the timestamp embedded in backup filenames (DDMMYYYY-HH-mm-ss)
	BackupStampFormat = "02012006-15-04-05"

	// Backup constants
	MaxBackups     = 14
	ArchiveDirName = "archive"

	// Logical table names
	TableTiming    = "timing"
	TableCompleted = "completed"
)

// Menu states
const (
	StateMenu SessionState = iota
	StateTiming
	StateAddProject
	StateSelectComplete
	StateSelectRemove
	StateConfirmRemove
)
