package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"prism/internal/config"
	"prism/internal/update"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const releaseNotesWidth = 80

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// printVersion writes the version information to w.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "prism version %s", Version)
	if Build != "unknown" && Build != "" {
		_, _ = fmt.Fprintf(w, " (build: %s)", Build)
	}
	if BuildTime != "" {
		_, _ = fmt.Fprintf(w, " [%s]", BuildTime)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
					_, _ = fmt.Fprintf(w, "Commit: %s\n", setting.Value[:7])
					break
				}
			}
		}
	}
}

func newVersionCmd(app *cliApp) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion(cmd.OutOrStdout())
			if !check {
				return nil
			}
			checker := app.newChecker(config.GetString(config.KeyUpdateRepository))
			info, err := checker.Check(cmd.Context(), Version)
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			printUpdateInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}

func printUpdateInfo(w io.Writer, info *update.Info) {
	switch {
	case info == nil:
		_, _ = fmt.Fprintln(w, "Development build; skipping the update check")
	case !info.UpdateAvailable:
		_, _ = fmt.Fprintf(w, "prism %s is the latest release\n", info.Current)
	default:
		_, _ = fmt.Fprintf(w, "prism %s is available (you have %s)\n", info.Latest, info.Current)
		if info.UpdateCommand != "" {
			_, _ = fmt.Fprintf(w, "Run: %s\n", info.UpdateCommand)
		} else if info.ReleaseURL != "" {
			_, _ = fmt.Fprintf(w, "Download: %s\n", info.ReleaseURL)
		}
		if notes := renderReleaseNotes(info.ReleaseNotes); notes != "" {
			_, _ = fmt.Fprintf(w, "\nRelease notes:\n%s\n", notes)
		}
	}
}

// renderReleaseNotes formats a Markdown release body for the terminal.
// Without color support the notty style keeps the output free of escapes.
func renderReleaseNotes(markdown string) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	style := "dark"
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = "notty"
	} else if !lipgloss.HasDarkBackground() {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithWordWrap(releaseNotesWidth),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n ")
}
