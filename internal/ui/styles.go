package ui

import (
	"prism/internal/accent"
	"prism/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles are rebuilt from the active theme on every render so that cycling
// themes takes effect immediately.

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextEmphasized()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleHeaderInfo() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleCategory() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted()).Padding(0, 1)
}

func styleCategoryActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextEmphasized()).
		Background(theme.Current().Secondary()).
		Bold(true).
		Padding(0, 1)
}

func styleAppName() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleDomain() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Foreground(theme.Current().TextEmphasized()).
		Bold(true)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func stylePicker() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(1, 2)
}

func stylePickerTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleErrorToast() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error()).Bold(true)
}

func styleSuccessToast() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Success())
}

func styleWarningToast() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Warning())
}

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundDarker()).
		Foreground(theme.Current().TextEmphasized()).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleHelpOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Padding(1, 2)
}

func styleHelpTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleHelpSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Info()).Bold(true)
}

// swatch renders a colored dot and the color word for v. Values without a
// representative color (unset, unknown) are shown muted.
func swatch(v accent.Value) string {
	if rgb, ok := accent.Swatch(v); ok {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(rgb.Hex())).Render("●")
		return dot + " " + v.ColorName()
	}
	if v == accent.Unknown {
		return styleMuted().Render("◌ custom")
	}
	return styleMuted().Render("○ default")
}
