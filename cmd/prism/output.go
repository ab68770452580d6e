package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"prism/internal/accent"
	"prism/internal/catalog"
	appErrors "prism/internal/errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func writeOut(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeErr(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func notFound(domain string) error {
	return appErrors.New(appErrors.CodeNotFound,
		fmt.Sprintf("no application with domain %q", domain), nil)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// renderAppTable lays out apps as a borderless table with a header rule.
func renderAppTable(apps []*catalog.Application) string {
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{
			app.DisplayName,
			app.Domain,
			accentLabel(app.Accent),
			app.Categories.String(),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers("NAME", "DOMAIN", "ACCENT", "CATEGORIES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// accentLabel renders v with a colored dot when it has a swatch.
func accentLabel(v accent.Value) string {
	name := v.ColorName()
	if v == accent.Unknown {
		name = "custom"
	}
	rgb, ok := accent.Swatch(v)
	if !ok || !v.IsSet() {
		return name
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(rgb.Hex())).Render("●")
	return dot + " " + name
}
