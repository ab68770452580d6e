// Package sources reads the places applications are listed on disk: bundle
// metadata, the Dock's persistent items and the Launchpad database.
//
// Every reader is fail-soft. A source that cannot be read contributes
// nothing and the reason is written to the debug log.
package sources

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"prism/internal/accent"
	"prism/internal/debug"
	"prism/internal/defaults"
)

var logf = debug.Scoped("sources")

// Identifier names an application by preference domain and bundle path.
type Identifier struct {
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// Bundle is the metadata read from an application's Info.plist.
type Bundle struct {
	Identifier
	Name        string
	DisplayName string
	// FeatureColorName is the bundle's NSAccentColorName. Only recorded
	// under the multi scheme.
	FeatureColorName string
}

// InfoPlistPath returns the Info.plist location for the bundle at appPath.
func InfoPlistPath(appPath string) string {
	return filepath.Join(appPath, "Contents", "Info.plist")
}

// DisplayName is the bundle's file name without its ".app" suffix.
func DisplayName(appPath string) string {
	return strings.TrimSuffix(filepath.Base(appPath), ".app")
}

// ReadBundle reads the bundle at appPath. It reports false when the bundle has
// no Info.plist, no icon, no identifier or no name.
func ReadBundle(fs billy.Filesystem, appPath string, scheme accent.Scheme) (Bundle, bool) {
	info, err := defaults.ReadPlist(fs, InfoPlistPath(appPath))
	if err != nil {
		logf("skip %s: %v", appPath, err)
		return Bundle{}, false
	}
	if info["CFBundleIconFile"] == nil && info["CFBundleIconName"] == nil {
		logf("skip %s: no icon", appPath)
		return Bundle{}, false
	}
	domain := stringValue(info, "CFBundleIdentifier")
	if domain == "" {
		logf("skip %s: no bundle identifier", appPath)
		return Bundle{}, false
	}
	name := stringValue(info, "CFBundleName")
	if name == "" {
		name = stringValue(info, "CFBundleExecutable")
	}
	if name == "" {
		logf("skip %s: no bundle name", appPath)
		return Bundle{}, false
	}

	b := Bundle{
		Identifier:  Identifier{Domain: domain, Path: appPath},
		Name:        name,
		DisplayName: DisplayName(appPath),
	}
	if scheme == accent.SchemeMulti {
		b.FeatureColorName = stringValue(info, "NSAccentColorName")
	}
	return b, true
}

func stringValue(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}
