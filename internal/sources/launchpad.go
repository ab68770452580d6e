package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"prism/internal/bookmark"
	"prism/internal/defaults"
)

const (
	// GetconfBinary reports per-user system directories.
	GetconfBinary = "/usr/bin/getconf"

	launchpadQuery = "SELECT bookmark, bundleid FROM apps"
	userDirMarker  = "/var/folders/"
)

// LaunchpadReader lists the applications known to Launchpad.
type LaunchpadReader struct {
	getconf defaults.Runner
}

// NewLaunchpadReader locates the Launchpad database through getconf.
func NewLaunchpadReader(getconf defaults.Runner) *LaunchpadReader {
	return &LaunchpadReader{getconf: getconf}
}

// DatabasePath returns the Launchpad database location. It reports false
// when getconf fails or names something other than a per-user directory.
func (r *LaunchpadReader) DatabasePath(ctx context.Context) (string, bool) {
	out, err := r.getconf.Run(ctx, "DARWIN_USER_DIR")
	if err != nil {
		logf("getconf DARWIN_USER_DIR: %v", err)
		return "", false
	}
	dir := strings.TrimSpace(string(out))
	if !strings.Contains(dir, userDirMarker) {
		logf("getconf DARWIN_USER_DIR: unexpected %q", dir)
		return "", false
	}
	return filepath.Join(dir, "com.apple.dock.launchpad", "db", "db"), true
}

// Identifiers returns the Launchpad applications. Any failure yields an
// empty list.
func (r *LaunchpadReader) Identifiers(ctx context.Context) []Identifier {
	path, ok := r.DatabasePath(ctx)
	if !ok {
		return nil
	}
	ids, err := ReadLaunchpadDB(ctx, path)
	if err != nil {
		logf("launchpad: %v", err)
		return nil
	}
	return ids
}

// ReadLaunchpadDB reads the apps table of the Launchpad database at path.
// Rows without an identifier or with an unreadable bookmark are skipped.
func ReadLaunchpadDB(ctx context.Context, path string) ([]Identifier, error) {
	db, err := OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := QueryRows(ctx, db, launchpadQuery)
	if err != nil {
		return nil, fmt.Errorf("read launchpad apps: %w", err)
	}

	var ids []Identifier
	for _, row := range rows {
		domain, _ := row["bundleid"].(string)
		book, _ := row["bookmark"].([]byte)
		if domain == "" || book == nil {
			continue
		}
		appPath, err := bookmark.Resolve(book)
		if err != nil {
			logf("launchpad item %s: %v", domain, err)
			continue
		}
		ids = append(ids, Identifier{Domain: domain, Path: appPath})
	}
	return ids, nil
}
