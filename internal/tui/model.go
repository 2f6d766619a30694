package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/tracker"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the menu loop: a single idle state with transient sub-dialogs
// for timing, adding, completing, and removing projects.
type Model struct {
	svc       *tracker.Service
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	input     textinput.Model
	summary   tracker.Summary
	completed []models.CompletedRecord

	session *tracker.Session
	elapsed time.Duration

	// pending remove selection, held across the confirmation dialog
	removeSelection int
	removeName      string

	message  string // transient info line
	errMsg   string // transient error line
	quitting bool
	width    int
	height   int
}

func NewModel(svc *tracker.Service) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()

	m := Model{
		svc:   svc,
		state: constants.StateMenu,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: input,
	}
	m.reload()

	return m
}

// reload refreshes the summary and the completed archive. Read failures
// surface as the menu's error line.
func (m *Model) reload() {
	summary, err := m.svc.Summary()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.summary = summary

	completed, err := m.svc.Completed()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.completed = completed
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
