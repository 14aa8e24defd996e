// Package ui renders installer output for a terminal. Styles degrade to plain
// text when the output is not a TTY.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quickr-dev/labctl/internal/db"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func Title(s string) string   { return boldStyle.Render(s) }
func Success(s string) string { return successStyle.Render(s) }
func Warn(s string) string    { return warnStyle.Render(s) }
func Error(s string) string   { return errorStyle.Render(s) }
func Muted(s string) string   { return mutedStyle.Render(s) }

// StepTable renders one installer run from the journal.
func StepTable(runID string, steps []db.Step) string {
	var b strings.Builder

	b.WriteString(boldStyle.Render(fmt.Sprintf("Installer run %s", runID)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-20s %-10s %-10s %s", "TIME", "STEP", "STATUS", "DETAIL")
	b.WriteString(boldStyle.Render(header))
	b.WriteString("\n")

	for _, s := range steps {
		status := fmt.Sprintf("%-10s", s.Status)
		switch s.Status {
		case db.StatusOK:
			status = successStyle.Render(status)
		case db.StatusFailed:
			status = errorStyle.Render(status)
		default:
			status = mutedStyle.Render(status)
		}

		fmt.Fprintf(&b, "  %-20s %-10s %s %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Step, status, Muted(s.Detail))
	}

	return b.String()
}
