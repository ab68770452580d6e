package defaults

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"howett.net/plist"

	"prism/internal/accent"
	"prism/internal/debug"
	appErrors "prism/internal/errors"
)

// RelaunchKey holds the relaunch toggle in the tool's own domain.
const RelaunchKey = "shouldRelaunchApplications"

var logf = debug.Scoped("defaults")

// Store reads accent preferences from disk and writes them through a Runner.
type Store struct {
	fs     billy.Filesystem
	home   string
	runner Runner
	scheme accent.Scheme
}

// NewStore returns a Store rooted at home on fs.
func NewStore(fs billy.Filesystem, home string, runner Runner, scheme accent.Scheme) *Store {
	return &Store{fs: fs, home: home, runner: runner, scheme: scheme}
}

// Scheme returns the encoding the store reads and writes.
func (s *Store) Scheme() accent.Scheme {
	return s.scheme
}

// PreferencePaths returns the candidate property-list files for domain, in
// lookup order: the sandbox container first, then the user library.
func (s *Store) PreferencePaths(domain string) []string {
	file := domain + ".plist"
	return []string{
		path.Join(s.home, "Library", "Containers", domain, "Data", "Library", "Preferences", file),
		path.Join(s.home, "Library", "Preferences", file),
	}
}

// Read returns the integer stored under the scheme's key in domain, or nil
// when the key is absent. The first preference file that exists wins even if
// it cannot be parsed.
func (s *Store) Read(domain string) *int {
	for _, p := range s.PreferencePaths(domain) {
		if _, err := s.fs.Stat(p); err != nil {
			continue
		}
		values, err := readPlist(s.fs, p)
		if err != nil {
			logf("read %s: %v", p, err)
			return nil
		}
		return intValue(values[s.scheme.Key()])
	}
	return nil
}

// Accent returns the decoded accent override for domain.
func (s *Store) Accent(domain string) accent.Value {
	return accent.Decode(s.Read(domain), s.scheme)
}

// Write stores v in domain. The highlight edit is issued first and only
// logged on failure. The color-key edit decides the result.
func (s *Store) Write(ctx context.Context, domain string, v accent.Value) error {
	if !v.Valid(s.scheme) {
		return appErrors.New(appErrors.CodeInvalidAccent,
			fmt.Sprintf("%s cannot be written under the %s scheme", v, s.scheme), nil)
	}
	highlight, color := WriteArgs(domain, v, s.scheme)
	if _, err := s.runner.Run(ctx, highlight...); err != nil {
		logf("highlight edit for %s: %v", domain, err)
	}
	if _, err := s.runner.Run(ctx, color...); err != nil {
		return appErrors.New(appErrors.CodeWriteFailed,
			fmt.Sprintf("set %s accent for %s", v.ColorName(), domain), err)
	}
	return nil
}

// WriteArgs returns the editor argument vectors for storing v in domain:
// the highlight edit and the color-key edit.
func WriteArgs(domain string, v accent.Value, scheme accent.Scheme) (highlight, color []string) {
	ins := accent.Encode(v, scheme)
	if ins.Delete {
		highlight = []string{"delete", domain, accent.KeyHighlightColor}
		color = []string{"delete", domain, ins.Key}
		return highlight, color
	}
	highlight = []string{"write", domain, accent.KeyHighlightColor, accent.HighlightColor(v)}
	color = []string{"write", domain, ins.Key, "-int", strconv.Itoa(ins.Int)}
	return highlight, color
}

// SystemAccent returns the global accent. Failures and unrecognised values
// read as Unset.
func (s *Store) SystemAccent(ctx context.Context) accent.Value {
	out, err := s.runner.Run(ctx, "read", "-g", s.scheme.Key())
	if err != nil {
		return accent.Unset
	}
	text := string(out)
	v := accent.DecodeString(&text, s.scheme)
	if v == accent.Unknown {
		return accent.Unset
	}
	return v
}

// RelaunchEnabled reports the persisted relaunch toggle for ownDomain.
func (s *Store) RelaunchEnabled(ctx context.Context, ownDomain string) bool {
	out, err := s.runner.Run(ctx, "read", ownDomain, RelaunchKey)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(string(out))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// SetRelaunch persists the relaunch toggle for ownDomain.
func (s *Store) SetRelaunch(ctx context.Context, ownDomain string, enabled bool) error {
	_, err := s.runner.Run(ctx, "write", ownDomain, RelaunchKey, "-bool", strconv.FormatBool(enabled))
	if err != nil {
		return fmt.Errorf("persist %s: %w", RelaunchKey, err)
	}
	return nil
}

// ReadPlist decodes an XML or binary property list into a dictionary.
func ReadPlist(fs billy.Filesystem, name string) (map[string]any, error) {
	return readPlist(fs, name)
}

func readPlist(fs billy.Filesystem, name string) (map[string]any, error) {
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if _, err := plist.Unmarshal(data, &values); err != nil {
		return nil, appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("decode %s", name), err)
	}
	return values, nil
}

func intValue(raw any) *int {
	var n int
	switch v := raw.(type) {
	case int64:
		n = int(v)
	case uint64:
		n = int(v)
	case int:
		n = v
	default:
		return nil
	}
	return &n
}
