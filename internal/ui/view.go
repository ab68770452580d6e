package ui

import (
	"fmt"
	"strings"

	"prism/internal/catalog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var categoryTitles = map[catalog.Category]string{
	catalog.CategoryAny:         "All",
	catalog.CategoryFeatured:    "Featured",
	catalog.CategoryLaunchpad:   "Launchpad",
	catalog.CategoryDock:        "Dock",
	catalog.CategorySystem:      "System",
	catalog.CategoryDeprecating: "Hidden",
}

func (m *App) View() string {
	if m.width == 0 {
		m.setSize(80, 24)
	}
	if m.showHelp {
		return renderHelpOverlay(m.keys, m.width, m.height)
	}

	body := m.renderList()
	if m.picker != nil {
		body = lipgloss.Place(m.width, m.list.Height(),
			lipgloss.Center, lipgloss.Center,
			m.picker.view(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCategories(),
		m.renderSearch(),
		body,
		m.renderStatus(),
		m.renderFooter(),
	)
}

func (m *App) renderHeader() string {
	title := styleAppHeader().Render("PRISM")
	parts := []string{m.capability.String(), "system " + swatch(m.systemAccent)}
	relaunch := "relaunch off"
	if m.relaunch {
		relaunch = "relaunch on"
	}
	parts = append(parts, relaunch)
	if m.version != "" {
		parts = append([]string{m.version}, parts...)
	}
	return title + " " + styleHeaderInfo().Render(strings.Join(parts, " · "))
}

func (m *App) renderCategories() string {
	var parts []string
	for _, c := range catalog.Categories {
		label := categoryTitles[c]
		if c == m.category {
			parts = append(parts, styleCategoryActive().Render(label))
		} else {
			parts = append(parts, styleCategory().Render(label))
		}
	}
	line := strings.Join(parts, "")
	if m.customizedOnly {
		line += "  " + styleWarningToast().Render("[customized only]")
	}
	return line
}

func (m *App) renderSearch() string {
	if m.searching {
		return m.textInput.View()
	}
	if m.query != "" {
		return styleMuted().Render(fmt.Sprintf("Search: %s  (Esc to clear)", m.query))
	}
	return ""
}

func (m *App) renderList() string {
	if len(m.list.Items()) == 0 {
		msg := "No applications in this category"
		if m.query != "" {
			msg = fmt.Sprintf("No applications match %q", m.query)
		} else if m.customizedOnly {
			msg = "No customized applications in this category"
		}
		return lipgloss.Place(m.width, m.list.Height(),
			lipgloss.Center, lipgloss.Center,
			styleMuted().Render(msg))
	}
	return m.list.View()
}

func (m *App) renderStatus() string {
	width := uint(max(m.width-2, 0))
	if m.busyDomain != "" {
		name := m.busyDomain
		if app, ok := m.catalog.Lookup(m.busyDomain); ok {
			name = app.DisplayName
		}
		return m.spinner.View() + " " + truncate.StringWithTail("Applying accent to "+name+"…", width, "…")
	}
	if m.reloading {
		return m.spinner.View() + " Scanning applications…"
	}
	text := truncate.StringWithTail(m.toast.text, width, "…")
	switch m.toast.kind {
	case toastSuccess:
		return styleSuccessToast().Render("✔ " + text)
	case toastWarning:
		return styleWarningToast().Render("! " + text)
	case toastError:
		return styleErrorToast().Render("✖ " + text)
	}
	return ""
}

func (m *App) countLabel() string {
	n := len(m.list.Items())
	if n == 1 {
		return "1 application"
	}
	return fmt.Sprintf("%d applications", n)
}
