package main

import (
	"context"
	"fmt"
	"strings"

	"prism/internal/config"
	"prism/internal/debug"
	"prism/internal/ui"
	"prism/internal/ui/theme"
	"prism/internal/update"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// cliApp holds the global flags and the lazily built services shared by
// every command.
type cliApp struct {
	Debug   bool
	JSON    bool
	Scheme  string
	Domain  string
	NoColor bool
	Version bool

	// newServices builds the services. Tests replace it.
	newServices func(ctx context.Context, reporter ui.StartupReporter) (*services, error)
	// newProgram wraps the UI model in a program. Tests replace it.
	newProgram programFactory
	newChecker func(repository string) updateChecker

	svc *services
}

type updateChecker interface {
	Check(ctx context.Context, current string) (*update.Info, error)
}

func newCLIApp() *cliApp {
	return &cliApp{
		newServices: buildServices,
		newProgram:  newTeaProgram,
		newChecker:  newUpdateChecker,
	}
}

func newUpdateChecker(repository string) updateChecker {
	return update.NewChecker(repository)
}

func newRootCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prism",
		Short:         "Per-application accent colors for macOS",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Browse applications interactively
  prism

  # Scriptable commands
  prism list --category dock
  prism set com.apple.Safari purple --relaunch
  prism reset com.apple.Safari
  prism match '#ff8800'
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		debug.Close()
	}

	cmd.Flags().BoolVar(&app.Version, "version", false, "Print version information and exit")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write a debug log to ~/.prism/debug.log")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Print JSON instead of text")
	cmd.PersistentFlags().StringVar(&app.Scheme, "scheme", "", "Accent scheme (auto, binary, legacy-multi, modern-multi)")
	cmd.PersistentFlags().StringVar(&app.Domain, "domain", "", "This tool's own preference domain")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newMatchCmd(app))
	cmd.AddCommand(newRelaunchCmd(app))
	cmd.AddCommand(newSystemCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

// setup loads configuration, applies explicitly set flags on top of it and
// starts debug logging.
func (a *cliApp) setup(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("json") {
		overrides[config.KeyOutputJSON] = a.JSON
	}
	if flags.Changed("scheme") {
		overrides[config.KeyScheme] = a.Scheme
	}
	if flags.Changed("domain") {
		overrides[config.KeyDomain] = a.Domain
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	if a.Debug {
		if err := debug.Init(true); err != nil {
			return err
		}
	}
	if a.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if name := config.GetString(config.KeyTheme); name != "" && !theme.SetTheme(name) {
		debug.Logf("[cli] unknown theme %q, keeping %s", name, theme.CurrentName())
	}
	return nil
}

// services returns the shared services, building them on first use.
func (a *cliApp) services(ctx context.Context, reporter ui.StartupReporter) (*services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := a.newServices(ctx, reporter)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *cliApp) jsonOutput() bool {
	return config.GetBool(config.KeyOutputJSON)
}
