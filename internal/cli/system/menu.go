package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/tracker"
	"github.com/tallyhq/tally/internal/tui"
)

// MenuCmd launches the interactive menu loop.
type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *cli.Context) error {
	return runMenu(ctx.Tracker, tea.WithAltScreen())
}

// runMenu runs the menu program to completion. Errors propagate to the
// caller so the store still gets closed on the way out.
func runMenu(svc *tracker.Service, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(tui.NewModel(svc), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}
	return nil
}
