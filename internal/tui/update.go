package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/errors"
	"github.com/tallyhq/tally/internal/tracker"
)

// selectionCancel marks the "0" input that backs out of a selection dialog.
const selectionCancel = 0

// parseSelection validates a 1-based project selection. "0" cancels;
// anything non-numeric or out of range is invalid input.
func parseSelection(input string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", tracker.ErrInvalidSelection, input)
	}
	if n == selectionCancel {
		return selectionCancel, nil
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %d", tracker.ErrInvalidSelection, n)
	}
	return n, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.state == constants.StateTiming && m.session != nil {
			m.elapsed = m.session.Elapsed()
			return m, tickCmd()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		if m.state == constants.StateTiming {
			// The open session blocks everything else until stop.
			if key.Matches(msg, m.keys.Submit) {
				return m.stopSession()
			}
			return m, nil
		}

		if key.Matches(msg, m.keys.Cancel) {
			return m.toMenu("Cancelled."), nil
		}

		if key.Matches(msg, m.keys.Submit) {
			return m.dispatch(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// toMenu resets to the idle menu state with an optional info line.
func (m Model) toMenu(message string) Model {
	m.state = constants.StateMenu
	m.message = message
	m.errMsg = ""
	m.removeSelection = 0
	m.removeName = ""
	m.input.Reset()
	return m
}

// fail reports invalid input or a command error and re-renders the menu.
func (m Model) fail(err error) Model {
	m = m.toMenu("")
	m.errMsg = errors.Format(err)
	return m
}

// dispatch handles one submitted line of input for the current state.
func (m Model) dispatch(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)

	switch m.state {
	case constants.StateMenu:
		return m.dispatchMenu(value)

	case constants.StateAddProject:
		if value == "" || value == "0" {
			return m.toMenu("Cancelled."), nil
		}
		return m.startTiming(value)

	case constants.StateSelectComplete:
		n, err := parseSelection(value, len(m.summary.Names))
		if err != nil {
			return m.fail(err), nil
		}
		if n == selectionCancel {
			return m.toMenu("Cancelled."), nil
		}
		rec, err := m.svc.Complete(n)
		if err != nil {
			return m.fail(err), nil
		}
		m = m.toMenu(fmt.Sprintf("Completed %s (%s).", rec.ProjectName, rec.TotalTime))
		m.reload()
		return m, nil

	case constants.StateSelectRemove:
		n, err := parseSelection(value, len(m.summary.Names))
		if err != nil {
			return m.fail(err), nil
		}
		if n == selectionCancel {
			return m.toMenu("Cancelled."), nil
		}
		m.removeSelection = n
		m.removeName = m.summary.Names[n-1]
		m.state = constants.StateConfirmRemove
		m.input.Reset()
		return m, nil

	case constants.StateConfirmRemove:
		if !strings.EqualFold(value, "y") {
			return m.toMenu("Cancelled."), nil
		}
		name, err := m.svc.Remove(m.removeSelection)
		if err != nil {
			return m.fail(err), nil
		}
		m = m.toMenu(fmt.Sprintf("Removed %s.", name))
		m.reload()
		return m, nil
	}

	return m, nil
}

// dispatchMenu handles the idle-menu commands: a project number starts
// timing, P adds, C completes, R removes, X exits. Case-insensitive.
func (m Model) dispatchMenu(value string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(value) {
	case "x":
		m.quitting = true
		return m, tea.Quit
	case "p":
		m.state = constants.StateAddProject
		m.message = ""
		m.errMsg = ""
		m.input.Reset()
		return m, nil
	case "c":
		if len(m.summary.Names) == 0 {
			return m.fail(fmt.Errorf("no active projects to complete")), nil
		}
		m.state = constants.StateSelectComplete
		m.message = ""
		m.errMsg = ""
		m.input.Reset()
		return m, nil
	case "r":
		if len(m.summary.Names) == 0 {
			return m.fail(fmt.Errorf("no active projects to remove")), nil
		}
		m.state = constants.StateSelectRemove
		m.message = ""
		m.errMsg = ""
		m.input.Reset()
		return m, nil
	}

	n, err := parseSelection(value, len(m.summary.Names))
	if err != nil || n == selectionCancel {
		return m.fail(fmt.Errorf("unrecognized choice %q", value)), nil
	}
	return m.startTiming(m.summary.Names[n-1])
}

// startTiming backs up the store and opens a stopwatch session. A backup
// failure aborts the command before any mutation.
func (m Model) startTiming(name string) (tea.Model, tea.Cmd) {
	session, err := m.svc.StartSession(name)
	if err != nil {
		return m.fail(err), nil
	}

	m.session = session
	m.elapsed = 0
	m.state = constants.StateTiming
	m.message = ""
	m.errMsg = ""
	m.input.Reset()
	return m, tickCmd()
}

// stopSession closes the open session and returns to the menu.
func (m Model) stopSession() (tea.Model, tea.Cmd) {
	rec, err := m.session.Stop()
	m.session = nil
	if err != nil {
		return m.fail(err), nil
	}

	m = m.toMenu(fmt.Sprintf("Logged %s for %s.", rec.OverallTime, rec.ProjectName))
	m.reload()
	return m, nil
}
