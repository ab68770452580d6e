package sources

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"prism/internal/bookmark"
	"prism/internal/defaults"
)

// Finder is always the first Dock item even though it is not stored in the
// Dock's preferences.
var Finder = Identifier{
	Domain: "com.apple.finder",
	Path:   "/System/Library/CoreServices/Finder.app",
}

// DockReader lists the applications pinned to the Dock.
type DockReader struct {
	fs   billy.Filesystem
	home string
}

// NewDockReader reads the Dock preferences under home on fs.
func NewDockReader(fs billy.Filesystem, home string) *DockReader {
	return &DockReader{fs: fs, home: home}
}

// PreferencePath returns the Dock's preference file.
func (r *DockReader) PreferencePath() string {
	return filepath.Join(r.home, "Library", "Preferences", "com.apple.dock.plist")
}

// Identifiers returns the pinned applications in Dock order, Finder first.
// Items without an identifier or with an unreadable bookmark are skipped.
func (r *DockReader) Identifiers() []Identifier {
	ids := []Identifier{Finder}

	prefs, err := defaults.ReadPlist(r.fs, r.PreferencePath())
	if err != nil {
		logf("dock preferences: %v", err)
		return ids
	}
	apps, ok := prefs["persistent-apps"].([]any)
	if !ok {
		return ids
	}
	for i, raw := range apps {
		record, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		tile, ok := record["tile-data"].(map[string]any)
		if !ok {
			continue
		}
		domain, _ := tile["bundle-identifier"].(string)
		book, _ := tile["book"].([]byte)
		if domain == "" || book == nil {
			continue
		}
		path, err := bookmark.Resolve(book)
		if err != nil {
			logf("dock item %d (%s): %v", i, domain, err)
			continue
		}
		ids = append(ids, Identifier{Domain: domain, Path: path})
	}
	return ids
}
