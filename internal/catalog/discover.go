package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"prism/internal/accent"
	"prism/internal/debug"
	"prism/internal/sources"
)

var logf = debug.Scoped("catalog")

const (
	appExtension  = ".app"
	systemPrefix  = "/System/Library/"
	maxScanDepth  = 8
	scanRecursion = "/Applications"
)

// DeprecatingDomains are system helpers that are pointless to customize.
var DeprecatingDomains = []string{
	"com.apple.dock",
	"com.apple.ScreenSaver.Engine",
	"com.apple.weather",
	"com.apple.Spotlight",
	"com.apple.siri.launcher",
	"com.apple.siri",
	"com.apple.AppleScriptUtility",
	"com.apple.CalendarFileHandler",
	"com.apple.cloudphotosd",
	"com.apple.VoiceOver",
	"com.apple.ScriptMenuApp",
	"com.apple.JarLauncher",
	"com.apple.JavaWebStart",
	"com.apple.ExpansionSlotUtility",
	"com.apple.DiskImageMounter",
	"com.apple.EscrowSecurityAlert",
	"com.apple.Automator.Automator-Application-Stub",
	"com.apple.AutomatorInstaller",
	"com.apple.FolderActionsDispatcher",
}

// DeprecatingKeywords mark an application as deprecating when its
// lowercased bundle name contains one of them.
var DeprecatingKeywords = []string{
	"remove",
	"uninstall",
	"handler",
	"trouble",
	"problem",
	"agent",
	"container",
	"migration",
	"report",
	"uiservice",
	"uiserver",
	"assistant",
}

// DefaultDirectories returns the directories scanned for applications.
func DefaultDirectories(home string) []string {
	return []string{
		"/Applications",
		"/System/Applications",
		filepath.Join(home, "Applications"),
		"/Developer/Applications",
		"/Network/Applications",
		"/Network/Developer/Applications",
		"/System/Library/CoreServices",
		"/Users/Shared/Applications",
	}
}

// AccentReader returns the stored accent override for a domain.
type AccentReader interface {
	Accent(domain string) accent.Value
}

// DockSource lists the applications pinned to the Dock.
type DockSource interface {
	Identifiers() []Identifier
}

// LaunchpadSource lists the applications known to Launchpad.
type LaunchpadSource interface {
	Identifiers(ctx context.Context) []Identifier
}

// Discoverer builds a Catalog from the filesystem and the Dock and
// Launchpad sources.
type Discoverer struct {
	FS          billy.Filesystem
	Accents     AccentReader
	Dock        DockSource
	Launchpad   LaunchpadSource
	Directories []string
	Scheme      accent.Scheme
	// SelfDomain is this tool's own domain; it is always deprecating.
	SelfDomain string
}

// Discover runs a full discovery pass. It only fails when ctx is done.
func (d *Discoverer) Discover(ctx context.Context) (*Catalog, error) {
	var paths []string
	for _, dir := range d.Directories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paths = append(paths, d.scan(dir, 0)...)
	}

	deny := make(map[string]bool, len(DeprecatingDomains)+1)
	for _, domain := range DeprecatingDomains {
		deny[domain] = true
	}
	if d.SelfDomain != "" {
		deny[d.SelfDomain] = true
	}

	found := make(map[string]*Application)
	for _, p := range paths {
		app, ok := d.record(p)
		if !ok {
			continue
		}
		if isDeprecating(app, deny) {
			app.Categories.Add(CategoryDeprecating)
		}
		if current, ok := found[app.Domain]; !ok || preferPath(app.Path, current.Path) {
			found[app.Domain] = app
		}
	}

	apps := make([]*Application, 0, len(found))
	for _, app := range found {
		apps = append(apps, app)
	}

	ids := map[Category][]Identifier{}
	if d.Dock != nil {
		ids[CategoryDock] = d.Dock.Identifiers()
	}
	if d.Launchpad != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids[CategoryLaunchpad] = d.Launchpad.Identifiers(ctx)
	}

	// found is also keyed by source domains that differ from the bundle's
	// own identifier, so each bundle keeps a single record.
	for _, category := range []Category{CategoryDock, CategoryLaunchpad} {
		for _, id := range ids[category] {
			app, ok := found[id.Domain]
			if !ok {
				rec, ok := d.record(id.Path)
				if !ok {
					continue
				}
				if existing, dup := found[rec.Domain]; dup {
					app = existing
				} else {
					app = rec
					found[rec.Domain] = rec
					apps = append(apps, rec)
				}
				found[id.Domain] = app
			}
			app.Categories.Add(category)
		}
	}

	sortApplications(apps)
	logf("discovered %d applications (%d dock, %d launchpad)",
		len(apps), len(ids[CategoryDock]), len(ids[CategoryLaunchpad]))
	return New(apps, ids), nil
}

// scan collects .app paths under dir. Hidden entries are skipped and only
// directories whose path contains "/Applications" are descended into.
func (d *Discoverer) scan(dir string, depth int) []string {
	entries, err := d.FS.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logf("scan %s: %v", dir, err)
		}
		return nil
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		p := filepath.Join(dir, name)
		if filepath.Ext(name) == appExtension {
			out = append(out, p)
			continue
		}
		if depth >= maxScanDepth || !strings.Contains(p, scanRecursion) {
			continue
		}
		if entry.IsDir() || entry.Mode()&os.ModeSymlink != 0 {
			out = append(out, d.scan(p, depth+1)...)
		}
	}
	return out
}

func (d *Discoverer) record(appPath string) (*Application, bool) {
	b, ok := sources.ReadBundle(d.FS, appPath, d.Scheme)
	if !ok {
		return nil, false
	}
	app := &Application{
		Identifier:       b.Identifier,
		Name:             b.Name,
		DisplayName:      b.DisplayName,
		Accent:           accent.Unset,
		FeatureColorName: b.FeatureColorName,
	}
	if d.Accents != nil {
		app.Accent = d.Accents.Accent(b.Domain)
	}
	if app.FeatureColorName != "" {
		app.Categories.Add(CategoryFeatured)
	}
	if strings.HasPrefix(appPath, systemPrefix) {
		app.Categories.Add(CategorySystem)
	}
	return app, true
}

func isDeprecating(app *Application, deny map[string]bool) bool {
	if deny[app.Domain] {
		return true
	}
	name := strings.ToLower(app.Name)
	for _, keyword := range DeprecatingKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// preferPath reports whether candidate should replace current for the same
// domain: the less nested path wins, then the lexicographically smaller one.
func preferPath(candidate, current string) bool {
	a, b := strings.Count(candidate, "/"), strings.Count(current, "/")
	if a != b {
		return a < b
	}
	return candidate < current
}

func sortApplications(apps []*Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if la, lb := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName); la != lb {
			return la < lb
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Domain < b.Domain
	})
}
