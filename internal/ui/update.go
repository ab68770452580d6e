package ui

import (
	"fmt"

	"prism/internal/accent"
	"prism/internal/catalog"
	"prism/internal/config"
	"prism/internal/ui/theme"
	"prism/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if m.busyDomain == "" && !m.reloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case assignDoneMsg:
		return m, m.handleAssignDone(msg)
	case relaunchToggledMsg:
		if msg.err != nil {
			return m, m.showToast(toastError, fmt.Sprintf("Could not change the relaunch setting: %v", msg.err))
		}
		m.relaunch = msg.enabled
		state := "off"
		if msg.enabled {
			state = "on"
		}
		return m, m.showToast(toastSuccess, "Relaunch after changes: "+state)
	case catalogLoadedMsg:
		m.reloading = false
		if msg.err != nil {
			return m, m.showToast(toastError, fmt.Sprintf("Rescan failed: %v", msg.err))
		}
		m.catalog = msg.catalog
		m.refreshList()
		return m, m.showToast(toastSuccess, fmt.Sprintf("Found %d applications", msg.catalog.Len()))
	case toastExpiredMsg:
		if msg.id == m.toast.id && m.toast.kind != toastError {
			m.toast = toast{}
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleAssignDone(msg assignDoneMsg) tea.Cmd {
	m.busyDomain = ""
	app, ok := m.catalog.Lookup(msg.domain)
	if !ok {
		return nil
	}
	if msg.result.Written {
		m.session.Changes = append(m.session.Changes, Change{
			Domain: app.Domain,
			Name:   app.DisplayName,
			From:   app.Accent,
			To:     msg.value,
		})
		app.Accent = msg.value
	}
	m.refreshList()

	name := app.DisplayName
	color := msg.value.ColorName()
	switch {
	case msg.err != nil && !msg.result.Written:
		m.lastFailed = app.Domain
		return m.showToast(toastError, fmt.Sprintf("Could not set %s to %s: %v (press c to copy %s)", name, color, msg.err, app.Domain))
	case msg.result.State == workflow.Idle:
		return m.showToast(toastWarning, "Prism does not change its own accent")
	case msg.result.TimedOut:
		return m.showToast(toastWarning, fmt.Sprintf("Set %s to %s, but it did not quit in time; the change shows after it restarts", name, color))
	case msg.result.Err != nil:
		return m.showToast(toastWarning, fmt.Sprintf("Set %s to %s, but relaunching failed: %v", name, color, msg.result.Err))
	case msg.result.Relaunched:
		return m.showToast(toastSuccess, fmt.Sprintf("Set %s to %s and relaunched it", name, color))
	}
	return m.showToast(toastSuccess, fmt.Sprintf("Set %s to %s", name, color))
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case m.showHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	case m.picker != nil:
		return m.handlePickerKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.textInput.SetValue(m.query)
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()
	case key.Matches(msg, m.keys.Escape):
		if m.query != "" {
			m.query = ""
			m.textInput.SetValue("")
			m.refreshList()
		}
	case key.Matches(msg, m.keys.Up):
		m.list.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.list.CursorDown()
	case key.Matches(msg, m.keys.Home):
		m.selectIndex(0)
	case key.Matches(msg, m.keys.End):
		m.selectIndex(len(m.list.Items()) - 1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectIndex(m.list.Index() - m.list.Paginator.PerPage)
	case key.Matches(msg, m.keys.PageDown):
		m.selectIndex(m.list.Index() + m.list.Paginator.PerPage)
	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Enter):
		if app := m.selected(); app != nil {
			m.picker = newAccentPicker(app, m.capability.Scheme())
		}
	case key.Matches(msg, m.keys.Reset):
		if app := m.selected(); app != nil && app.Accent != accent.Unset {
			return m, m.startAssign(app, accent.Unset)
		}
	case key.Matches(msg, m.keys.Customized):
		m.customizedOnly = !m.customizedOnly
		m.refreshList()
	case key.Matches(msg, m.keys.Relaunch):
		if m.prefs != nil {
			return m, setRelaunchCmd(m.prefs, m.selfDomain, !m.relaunch)
		}
	case key.Matches(msg, m.keys.Refresh):
		if m.reload != nil && !m.reloading {
			m.reloading = true
			return m, tea.Batch(m.spinner.Tick, reloadCmd(m.reload))
		}
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyDomain()
	case key.Matches(msg, m.keys.Theme):
		name := theme.CycleTheme()
		if err := config.SaveKey(config.KeyTheme, name); err != nil {
			logf("save theme %s: %v", name, err)
		}
		return m, m.showToast(toastSuccess, "Theme: "+name)
	}
	return m, nil
}

func (m *App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.picker = nil
	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)
	case key.Matches(msg, m.keys.Enter):
		app, v := m.picker.app, m.picker.selected()
		m.picker = nil
		if v == app.Accent {
			return m, nil
		}
		return m, m.startAssign(app, v)
	}
	return m, nil
}

func (m *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.textInput.Blur()
		m.textInput.SetValue("")
		m.query = ""
		m.refreshList()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.textInput.Blur()
		return m, nil
	case tea.KeyUp:
		m.list.CursorUp()
		return m, nil
	case tea.KeyDown:
		m.list.CursorDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if q := m.textInput.Value(); q != m.query {
		m.query = q
		m.refreshList()
	}
	return m, cmd
}

// startAssign runs the assignment in the background. Only one assignment
// runs at a time.
func (m *App) startAssign(app *catalog.Application, v accent.Value) tea.Cmd {
	if m.busyDomain != "" {
		return m.showToast(toastWarning, "Still applying the previous change")
	}
	m.busyDomain = app.Domain
	m.toast = toast{}
	return tea.Batch(m.spinner.Tick, assignCmd(m.assigner, *app, v))
}

func (m *App) copyDomain() tea.Cmd {
	domain := m.lastFailed
	if domain == "" {
		app := m.selected()
		if app == nil {
			return nil
		}
		domain = app.Domain
	}
	if err := m.copy(domain); err != nil {
		return m.showToast(toastError, fmt.Sprintf("Could not copy to clipboard: %v", err))
	}
	m.lastFailed = ""
	return m.showToast(toastSuccess, fmt.Sprintf("Copied '%s' to clipboard.", domain))
}

func (m *App) cycleCategory(step int) {
	n := len(catalog.Categories)
	idx := 0
	for i, c := range catalog.Categories {
		if c == m.category {
			idx = i
			break
		}
	}
	m.category = catalog.Categories[(idx+step+n)%n]
	m.refreshList()
}

func (m *App) selectIndex(i int) {
	n := len(m.list.Items())
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.list.Select(i)
}
