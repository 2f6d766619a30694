package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/constants"
	"github.com/tallyhq/tally/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateTiming {
		return m.viewTiming()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(constants.AppName + " — project time tracker"))
	b.WriteString("\n\n")

	b.WriteString(m.viewProjects())
	b.WriteString("\n")
	b.WriteString(commandStyle.Render("[P] new project   [C] complete   [R] remove   [X] exit"))
	b.WriteString("\n\n")
	b.WriteString(m.viewCompleted())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(dangerStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.message != "" {
		b.WriteString(infoStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.prompt())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) viewProjects() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Active projects"))
	b.WriteString("\n")

	if len(m.summary.Names) == 0 {
		b.WriteString(dimStyle.Render("  none — press P to start one"))
		b.WriteString("\n")
		return b.String()
	}

	for i, name := range m.summary.Names {
		total := utils.FormatHMS(m.summary.Totals[name])
		b.WriteString(fmt.Sprintf("  [%d] %-24s %s\n", i+1, name, totalStyle.Render(total)))
	}
	return b.String()
}

func (m Model) viewCompleted() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Completed"))
	b.WriteString("\n")

	if len(m.completed) == 0 {
		b.WriteString(dimStyle.Render("  none yet"))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range m.completed {
		b.WriteString(fmt.Sprintf("  %-24s %s  (%s)\n", rec.ProjectName, totalStyle.Render(rec.TotalTime), rec.CompletedDate))
	}
	return b.String()
}

func (m Model) prompt() string {
	switch m.state {
	case constants.StateAddProject:
		return "New project name (0 cancels):"
	case constants.StateSelectComplete:
		return "Complete which project? (number, 0 cancels)"
	case constants.StateSelectRemove:
		return "Remove which project? (number, 0 cancels)"
	case constants.StateConfirmRemove:
		return dangerStyle.Render(fmt.Sprintf("Delete all timing for %s? (y/N)", m.removeName))
	default:
		return "Select a project number or command:"
	}
}

func (m Model) viewTiming() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		sectionStyle.Render(fmt.Sprintf("Timing %s", m.session.Project)),
		"",
		totalStyle.Render(utils.FormatHMS(m.elapsed)),
		"",
		dimStyle.Render("press enter to stop"),
	)

	if m.width == 0 || m.height == 0 {
		return docStyle.Render(body)
	}

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		body,
	)
}
