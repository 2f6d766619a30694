package system

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/backup"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/tracker"
)

func TestRunMenuReturnsOnExit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tally.json")
	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	svc := tracker.New(store, backup.NewManager(path))

	// "x" then enter exits the menu; the loop must return instead of
	// terminating the process itself.
	err := runMenu(svc,
		tea.WithInput(strings.NewReader("x\r")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
	if err != nil {
		t.Fatalf("runMenu() error = %v", err)
	}
}
