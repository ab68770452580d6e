// Package ui implements the interactive accent browser.
package ui

import (
	"context"
	"errors"
	"time"

	"prism/internal/accent"
	"prism/internal/catalog"
	"prism/internal/debug"
	"prism/internal/workflow"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var logf = debug.Scoped("ui")

const (
	minListHeight = 3
	// header, category bar, search line, status line, footer
	chromeHeight = 5
)

// ErrNoCatalog is returned by NewApp when no catalog was supplied.
var ErrNoCatalog = errors.New("no application catalog")

// Assigner applies an accent to an application.
type Assigner interface {
	Assign(ctx context.Context, app *catalog.Application, v accent.Value) (workflow.Result, error)
}

// Preferences reads and writes the relaunch setting in the tool's own domain.
type Preferences interface {
	RelaunchEnabled(ctx context.Context, ownDomain string) bool
	SetRelaunch(ctx context.Context, ownDomain string, enabled bool) error
}

// Config configures the UI application.
type Config struct {
	Catalog      *catalog.Catalog
	Capability   accent.Capability
	SystemAccent accent.Value
	Assigner     Assigner
	Preferences  Preferences
	SelfDomain   string
	// Reload rescans applications. Rescanning is unavailable when nil.
	Reload          func(ctx context.Context) (*catalog.Catalog, error)
	CopyToClipboard func(string) error
	Category        catalog.Category
	CustomizedOnly  bool
	Version         string
}

type toastKind int

const (
	toastNone toastKind = iota
	toastSuccess
	toastWarning
	toastError
)

// Change is one accent written during the session.
type Change struct {
	Domain string
	Name   string
	From   accent.Value
	To     accent.Value
}

// Session summarizes what happened while the UI ran.
type Session struct {
	Started time.Time
	Changes []Change
}

type toast struct {
	kind toastKind
	text string
	id   int
}

// App implements the Bubble Tea model for prism.
type App struct {
	catalog      *catalog.Catalog
	capability   accent.Capability
	systemAccent accent.Value
	assigner     Assigner
	prefs        Preferences
	selfDomain   string
	reload       func(ctx context.Context) (*catalog.Catalog, error)
	copy         func(string) error
	version      string

	keys           KeyMap
	list           list.Model
	textInput      textinput.Model
	spinner        spinner.Model
	searching      bool
	query          string
	category       catalog.Category
	customizedOnly bool
	relaunch       bool

	picker   *accentPicker
	showHelp bool

	busyDomain string
	reloading  bool
	toast      toast
	toastSeq   int
	// lastFailed is the domain of the most recent failed assignment.
	lastFailed string
	session    Session

	width  int
	height int
}

// NewApp creates the UI model from an already discovered catalog.
func NewApp(cfg Config) (*App, error) {
	if cfg.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if cfg.Assigner == nil {
		return nil, errors.New("ui: assigner is required")
	}
	copyFn := cfg.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "Search applications..."
	ti.Prompt = "/"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		catalog:        cfg.Catalog,
		capability:     cfg.Capability,
		systemAccent:   cfg.SystemAccent,
		assigner:       cfg.Assigner,
		prefs:          cfg.Preferences,
		selfDomain:     cfg.SelfDomain,
		reload:         cfg.Reload,
		copy:           copyFn,
		version:        cfg.Version,
		keys:           DefaultKeyMap(),
		textInput:      ti,
		spinner:        sp,
		category:       cfg.Category,
		customizedOnly: cfg.CustomizedOnly,
		session:        Session{Started: time.Now()},
	}

	l := list.New(nil, appDelegate{busyDomain: &app.busyDomain}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	app.list = l

	if cfg.Preferences != nil {
		app.relaunch = cfg.Preferences.RelaunchEnabled(context.Background(), cfg.SelfDomain)
	}
	app.refreshList()
	return app, nil
}

// Session returns the changes made so far.
func (m *App) Session() Session {
	out := m.session
	out.Changes = append([]Change(nil), m.session.Changes...)
	return out
}

func (m *App) Init() tea.Cmd {
	return nil
}

// query describes what the list currently shows.
func (m *App) currentQuery() catalog.Query {
	return catalog.Query{
		Category:       m.category,
		Search:         m.query,
		CustomizedOnly: m.customizedOnly,
		SystemAccent:   m.systemAccent,
	}
}

// refreshList rebuilds the list from the catalog, keeping the selected
// application selected when it is still listed.
func (m *App) refreshList() {
	keep := ""
	if app := m.selected(); app != nil {
		keep = app.Domain
	}
	apps := m.catalog.View(m.currentQuery())
	m.list.SetItems(toItems(apps))
	idx := 0
	for i, app := range apps {
		if app.Domain == keep {
			idx = i
			break
		}
	}
	if len(apps) > 0 {
		m.list.Select(idx)
	}
}

func (m *App) selected() *catalog.Application {
	item, ok := m.list.SelectedItem().(appItem)
	if !ok {
		return nil
	}
	return item.app
}

func (m *App) visibleApps() []*catalog.Application {
	items := m.list.Items()
	out := make([]*catalog.Application, 0, len(items))
	for _, it := range items {
		if a, ok := it.(appItem); ok {
			out = append(out, a.app)
		}
	}
	return out
}

func (m *App) setSize(width, height int) {
	m.width = width
	m.height = height
	listHeight := height - chromeHeight
	if listHeight < minListHeight {
		listHeight = minListHeight
	}
	m.list.SetSize(width, listHeight)
	m.textInput.Width = width - 4
}

func (m *App) showToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{kind: kind, text: text, id: m.toastSeq}
	if kind == toastError {
		// errors stay until the next action replaces them
		return nil
	}
	return scheduleToastExpiry(m.toastSeq)
}

func assignCmd(a Assigner, app catalog.Application, v accent.Value) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Assign(context.Background(), &app, v)
		return assignDoneMsg{domain: app.Domain, value: v, result: res, err: err}
	}
}

func setRelaunchCmd(p Preferences, self string, enabled bool) tea.Cmd {
	return func() tea.Msg {
		err := p.SetRelaunch(context.Background(), self, enabled)
		return relaunchToggledMsg{enabled: enabled, err: err}
	}
}

func reloadCmd(reload func(context.Context) (*catalog.Catalog, error)) tea.Cmd {
	return func() tea.Msg {
		cat, err := reload(context.Background())
		return catalogLoadedMsg{catalog: cat, err: err}
	}
}
