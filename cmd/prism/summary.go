package main

import (
	"fmt"
	"io"
	"time"

	"prism/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	dimColor     = lipgloss.Color("#6272A4")
	textColor    = lipgloss.Color("#F8F8F2")
)

// printExitSummary prints what changed during a TUI session. It is shown
// after the program leaves the alternate screen.
func printExitSummary(w io.Writer, version string, session ui.Session) {
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	dimStyle := lipgloss.NewStyle().Foreground(dimColor)
	textStyle := lipgloss.NewStyle().Foreground(textColor)

	versionStr := ""
	if version != "" {
		versionStr = dimStyle.Render(" v" + version)
	}
	sessionStr := dimStyle.Render(fmt.Sprintf(" • %s session", formatDuration(time.Since(session.Started))))
	_, _ = fmt.Fprintln(w, appStyle.Render("Prism")+versionStr+sessionStr)

	switch n := len(session.Changes); n {
	case 0:
		_, _ = fmt.Fprintln(w, textStyle.Render("No accents changed"))
		return
	case 1:
		_, _ = fmt.Fprintln(w, textStyle.Render("1 accent changed:"))
	default:
		_, _ = fmt.Fprintln(w, textStyle.Render(fmt.Sprintf("%d accents changed:", n)))
	}
	for _, c := range session.Changes {
		_, _ = fmt.Fprintf(w, "  %s %s → %s\n", c.Name, dimStyle.Render(c.From.ColorName()), c.To.ColorName())
	}
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
