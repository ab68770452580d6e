package ui

import (
	"fmt"
	"io"
	"strings"

	"prism/internal/catalog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	nameColumnWidth   = 28
	swatchColumnWidth = 12
)

// appItem adapts a catalog record for bubbles/list. It holds the canonical
// pointer so accent changes show up without rebuilding items.
type appItem struct {
	app *catalog.Application
}

func (i appItem) FilterValue() string { return i.app.DisplayName }

// appDelegate renders one application per line:
// cursor, display name, domain, accent swatch.
type appDelegate struct {
	busyDomain *string
}

func (d appDelegate) Height() int                         { return 1 }
func (d appDelegate) Spacing() int                        { return 0 }
func (d appDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d appDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(appItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	_, _ = fmt.Fprint(w, renderAppRow(it.app, m.Width(), selected, d.busyDomain != nil && *d.busyDomain == it.app.Domain))
}

func renderAppRow(app *catalog.Application, width int, selected, busy bool) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	name := padRight(ansi.Truncate(app.DisplayName, nameColumnWidth, "…"), nameColumnWidth)

	domainWidth := width - lipgloss.Width(cursor) - nameColumnWidth - swatchColumnWidth - 2
	if domainWidth < 0 {
		domainWidth = 0
	}
	domain := padRight(ansi.Truncate(app.Domain, domainWidth, "…"), domainWidth)

	right := swatch(app.Accent)
	if busy {
		right = styleMuted().Render("… applying")
	}

	if selected {
		return styleSelectedRow().Render(cursor+name+" "+domain+" ") + right
	}
	return cursor + styleAppName().Render(name) + " " + styleDomain().Render(domain) + " " + right
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func toItems(apps []*catalog.Application) []list.Item {
	items := make([]list.Item, len(apps))
	for i, app := range apps {
		items[i] = appItem{app: app}
	}
	return items
}
