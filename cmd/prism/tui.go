package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prism/internal/catalog"
	"prism/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const startupSpinnerDelay = 150 * time.Millisecond

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func newTeaProgram(app *ui.App) programRunner {
	return tea.NewProgram(app, tea.WithAltScreen())
}

// runTUI loads the catalog behind a spinner, runs the browser and prints
// a summary of the session.
func runTUI(cmd *cobra.Command, app *cliApp) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var sp *progressSpinner
	var reporter ui.StartupReporter = ui.StartupReporterFunc(nil)
	if isTerminal(cmd.ErrOrStderr()) {
		sp = newProgressSpinner(cmd.ErrOrStderr(), startupSpinnerDelay)
		reporter = sp
	}
	reporter.Stage(ui.StartupStageInit, "")

	cfg, err := loadUIConfig(ctx, app, reporter)
	sp.Stop()
	if err != nil {
		return err
	}

	model, err := runProgram(cfg, ui.NewApp, app.newProgram)
	if err != nil {
		return err
	}
	printExitSummary(cmd.OutOrStdout(), Version, model.Session())
	return nil
}

func loadUIConfig(ctx context.Context, app *cliApp, reporter ui.StartupReporter) (ui.Config, error) {
	svc, err := app.services(ctx, reporter)
	if err != nil {
		return ui.Config{}, err
	}
	cat, err := svc.discover(ctx, reporter)
	if err != nil {
		return ui.Config{}, err
	}
	reporter.Stage(ui.StartupStageReady, "")

	return ui.Config{
		Catalog:      cat,
		Capability:   svc.capability,
		SystemAccent: svc.store.SystemAccent(ctx),
		Assigner:     svc.assigner,
		Preferences:  svc.store,
		SelfDomain:   svc.selfDomain,
		Reload: func(ctx context.Context) (*catalog.Catalog, error) {
			return svc.discover(ctx, nil)
		},
		Category: catalog.CategoryFeatured,
		Version:  Version,
	}, nil
}

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (*ui.App, error) {
	app, err := builder(cfg)
	if err != nil {
		if errors.Is(err, ui.ErrNoCatalog) {
			return nil, err
		}
		return nil, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	return app, nil
}
