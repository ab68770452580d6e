// Package update checks GitHub for a newer prism release.
//
// It only reports; installing a release is left to the package manager or
// the user.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prism/internal/debug"

	"github.com/Masterminds/semver/v3"
)

var logf = debug.Scoped("update")

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 5 * time.Second
)

var (
	ErrNetworkFailure = errors.New("network request failed")
	ErrRateLimited    = errors.New("rate limited by GitHub API")
	// ErrNoRepository means no release repository is configured.
	ErrNoRepository = errors.New("no release repository configured")
)

type release struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
	Body        string    `json:"body"`
}

// Info is the result of a check.
type Info struct {
	Current         *semver.Version
	Latest          *semver.Version
	UpdateAvailable bool
	ReleaseURL      string
	// ReleaseNotes is the release body as published, in Markdown.
	ReleaseNotes    string
	PublishedAt     time.Time
	InstallMethod   InstallMethod
	UpdateCommand   string
}

// InstallMethod is how the running binary was installed.
type InstallMethod int

const (
	InstallUnknown InstallMethod = iota
	InstallHomebrew
	InstallDirect
)

func (m InstallMethod) String() string {
	switch m {
	case InstallHomebrew:
		return "homebrew"
	case InstallDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// Checker queries the latest release of one repository.
type Checker struct {
	repository string
	baseURL    string
	httpClient *http.Client
	executable func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = client
	}
}

// WithBaseURL points the checker at another API host.
func WithBaseURL(url string) Option {
	return func(c *Checker) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewChecker creates a checker for repository, given as "owner/name".
func NewChecker(repository string, opts ...Option) *Checker {
	c := &Checker{
		repository: strings.Trim(strings.TrimSpace(repository), "/"),
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		executable: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check compares current with the latest release. Development builds and
// versions that do not parse return nil without error.
func (c *Checker) Check(ctx context.Context, current string) (*Info, error) {
	if c.repository == "" {
		return nil, ErrNoRepository
	}
	if current == "" || current == "dev" {
		return nil, nil
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		logf("skip check for version %q: %v", current, err)
		return nil, nil
	}

	rel, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := semver.NewVersion(rel.TagName)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", rel.TagName, err)
	}

	method := c.installMethod()
	return &Info{
		Current:         cur,
		Latest:          latest,
		UpdateAvailable: cur.LessThan(latest),
		ReleaseURL:      rel.HTMLURL,
		ReleaseNotes:    strings.TrimSpace(rel.Body),
		PublishedAt:     rel.PublishedAt,
		InstallMethod:   method,
		UpdateCommand:   updateCommand(method),
	}, nil
}

func (c *Checker) latestRelease(ctx context.Context) (*release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "prism-update-checker")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrNetworkFailure, resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &rel, nil
}

func (c *Checker) installMethod() InstallMethod {
	path, err := c.executable()
	if err != nil {
		return InstallUnknown
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if strings.Contains(path, "/Cellar/") || strings.Contains(path, "/homebrew/") {
		return InstallHomebrew
	}
	return InstallDirect
}

func updateCommand(method InstallMethod) string {
	if method == InstallHomebrew {
		return "brew upgrade prism"
	}
	return ""
}
