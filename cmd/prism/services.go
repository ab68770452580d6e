package main

import (
	"context"
	"fmt"
	"os"

	"prism/internal/accent"
	"prism/internal/catalog"
	"prism/internal/config"
	"prism/internal/debug"
	"prism/internal/defaults"
	"prism/internal/hostfs"
	"prism/internal/sources"
	"prism/internal/ui"
	"prism/internal/workflow"

	"github.com/go-git/go-billy/v5"
)

var logf = debug.Scoped("cli")

// services are the collaborators every command works with.
type services struct {
	capability accent.Capability
	store      *defaults.Store
	discoverer *catalog.Discoverer
	assigner   *workflow.Assigner
	selfDomain string
}

// serviceDeps are the host resources services are built from.
type serviceDeps struct {
	fs        billy.Filesystem
	home      string
	defaults  defaults.Runner
	swVers    defaults.Runner
	getconf   defaults.Runner
	workspace workflow.Workspace
}

func hostDeps() (serviceDeps, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return serviceDeps{}, fmt.Errorf("determine user home: %w", err)
	}
	return serviceDeps{
		fs:        hostfs.New(),
		home:      home,
		defaults:  defaults.NewCLIRunner(defaults.WithBinaryPath(config.GetString(config.KeyDefaultsPath))),
		swVers:    defaults.NewCLIRunner(defaults.WithBinaryPath(config.GetString(config.KeySwVersPath))),
		getconf:   defaults.NewCLIRunner(defaults.WithBinaryPath(config.GetString(config.KeyGetconfPath))),
		workspace: workflow.NewProcessWorkspace(),
	}, nil
}

func buildServices(ctx context.Context, reporter ui.StartupReporter) (*services, error) {
	deps, err := hostDeps()
	if err != nil {
		return nil, err
	}
	return newServices(ctx, deps, reporter)
}

func newServices(ctx context.Context, deps serviceDeps, reporter ui.StartupReporter) (*services, error) {
	if reporter == nil {
		reporter = ui.StartupReporterFunc(nil)
	}
	reporter.Stage(ui.StartupStageDetectingCapability, "")
	capability, err := defaults.ResolveCapability(ctx, config.GetString(config.KeyScheme), deps.swVers)
	if err != nil {
		return nil, err
	}
	logf("capability %s", capability)

	scheme := capability.Scheme()
	store := defaults.NewStore(deps.fs, deps.home, deps.defaults, scheme)
	selfDomain := config.GetString(config.KeyDomain)

	dirs := config.GetStringSlice(config.KeyDiscoveryDirectories)
	if len(dirs) == 0 {
		dirs = catalog.DefaultDirectories(deps.home)
	}

	svc := &services{
		capability: capability,
		store:      store,
		selfDomain: selfDomain,
		discoverer: &catalog.Discoverer{
			FS:          deps.fs,
			Accents:     store,
			Dock:        sources.NewDockReader(deps.fs, deps.home),
			Launchpad:   sources.NewLaunchpadReader(deps.getconf),
			Directories: dirs,
			Scheme:      scheme,
			SelfDomain:  selfDomain,
		},
		assigner: &workflow.Assigner{
			Writer:    store,
			Workspace: deps.workspace,
			RelaunchEnabled: func(ctx context.Context) bool {
				return store.RelaunchEnabled(ctx, selfDomain)
			},
			PollInterval: config.GetDuration(config.KeyRelaunchPollInterval),
			Timeout:      config.GetDuration(config.KeyRelaunchTimeout),
			SelfDomain:   selfDomain,
		},
	}
	return svc, nil
}

// discover runs a discovery pass, reporting progress on reporter.
func (s *services) discover(ctx context.Context, reporter ui.StartupReporter) (*catalog.Catalog, error) {
	if reporter == nil {
		reporter = ui.StartupReporterFunc(nil)
	}
	reporter.Stage(ui.StartupStageScanning, fmt.Sprintf("%d folders", len(s.discoverer.Directories)))
	cat, err := s.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}
	reporter.Stage(ui.StartupStageReadingAccents, fmt.Sprintf("%d applications", cat.Len()))
	return cat, nil
}

// application finds domain in a fresh catalog.
func (s *services) application(ctx context.Context, domain string) (*catalog.Application, error) {
	cat, err := s.discover(ctx, nil)
	if err != nil {
		return nil, err
	}
	app, ok := cat.Lookup(domain)
	if !ok {
		return nil, notFound(domain)
	}
	return app, nil
}
