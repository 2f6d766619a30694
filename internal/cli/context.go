package cli

import (
	"github.com/tallyhq/tally/internal/backup"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/tracker"
)

// Context carries the wired collaborators into each command. The store
// path lives here, never in package state, so commands stay independently
// testable.
type Context struct {
	Config  *config.Config
	Store   storage.Provider
	Backups *backup.Manager
	Tracker *tracker.Service
}
