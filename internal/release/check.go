// Package release checks for and installs newer published releases of
// the minuteclass binary.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DevVersion is the version string of builds without release ldflags.
const DevVersion = "(devel)"

var (
	ErrDevBuild      = errors.New("development build has no release version")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Checker talks to the GitHub releases API.
type Checker struct {
	client          *http.Client
	apiBaseURL      string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

type Option func(*Checker)

// WithBaseURL overrides the API base URL (default https://api.github.com).
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.apiBaseURL = strings.TrimRight(u, "/") }
}

// WithDownloadBaseURL overrides the asset host (default https://github.com).
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.downloadBaseURL = strings.TrimRight(u, "/") }
}

func WithRepository(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 10 * time.Second},
		apiBaseURL:      "https://api.github.com",
		downloadBaseURL: "https://github.com",
		owner:           "minuteclass",
		repo:            "minuteclass",
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of a Check.
type Result struct {
	Current         string
	Latest          string
	URL             string
	PublishedAt     time.Time
	UpdateAvailable bool
}

type githubRelease struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
}

// Check compares current against the latest published release.
func (c *Checker) Check(ctx context.Context, current string) (*Result, error) {
	if current == "" || current == DevVersion {
		return nil, ErrDevBuild
	}
	cur := canonical(current)
	if cur == "" {
		return nil, fmt.Errorf("invalid version %q", current)
	}

	rel, err := c.latest(ctx)
	if err != nil {
		return nil, err
	}
	latest := canonical(rel.TagName)
	if latest == "" {
		return nil, fmt.Errorf("latest release has invalid tag %q", rel.TagName)
	}

	return &Result{
		Current:         cur,
		Latest:          rel.TagName,
		URL:             rel.HTMLURL,
		PublishedAt:     rel.PublishedAt,
		UpdateAvailable: semver.Compare(latest, cur) > 0,
	}, nil
}

func (c *Checker) latest(ctx context.Context) (*githubRelease, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch latest release: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rel githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}

// canonical returns v as a canonical semver string with a leading "v",
// or "" if v is not a valid version.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}
