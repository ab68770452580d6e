package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var listFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"⇥", "Category"},
	{"⏎", "Accent"},
	{"x", "Reset"},
	{"f", "Customized"},
	{"/", "Search"},
	{"R", "Relaunch"},
	{"q", "Quit"},
	{"?", "Help"},
}

var pickerFooterHints = []footerHint{
	{"↑↓", "Choose"},
	{"⏎", "Apply"},
	{"Esc", "Cancel"},
}

var searchFooterHints = []footerHint{
	{"⏎", "Done"},
	{"Esc", "Clear"},
}

// renderFooter renders the footer bar with pill-style key hints and the
// number of listed applications on the right.
func (m *App) renderFooter() string {
	var hints []footerHint
	switch {
	case m.picker != nil:
		hints = pickerFooterHints
	case m.searching:
		hints = searchFooterHints
	default:
		hints = listFooterHints
	}

	right := styleKeyDesc().Render(m.countLabel())
	rightWidth := lipgloss.Width(right)
	hints = trimHintsToFit(hints, m.width-rightWidth-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := m.width - lipgloss.Width(left) - rightWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + right
}

// trimHintsToFit drops hints from the right until the rendered bar fits.
func trimHintsToFit(hints []footerHint, width int) []footerHint {
	for len(hints) > 0 {
		total := 0
		for i, h := range hints {
			if i > 0 {
				total += 2
			}
			total += lipgloss.Width(keyPill(h.key, h.desc))
		}
		if total <= width {
			return hints
		}
		hints = hints[:len(hints)-1]
	}
	return hints
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}
