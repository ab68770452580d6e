package ui

import (
	"time"

	"prism/internal/accent"
	"prism/internal/catalog"
	"prism/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 5 * time.Second

// assignDoneMsg carries the outcome of a background assignment back to the
// UI goroutine, which is the only place catalog records are mutated.
type assignDoneMsg struct {
	domain string
	value  accent.Value
	result workflow.Result
	err    error
}

type relaunchToggledMsg struct {
	enabled bool
	err     error
}

type catalogLoadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

type toastExpiredMsg struct {
	id int
}

func scheduleToastExpiry(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
