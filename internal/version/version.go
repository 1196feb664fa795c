// Package version reports build information and checks GitHub for newer
// roster releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// GitHubRepo is the repository releases are published to.
const GitHubRepo = "wexinc/roster"

// DefaultAPIBase is the GitHub REST API root.
const DefaultAPIBase = "https://api.github.com"

// Info contains build information about the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates a new Info from the build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns a one-line version string.
func (i *Info) String() string {
	return fmt.Sprintf("roster %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

// FullString returns a detailed version string.
func (i *Info) FullString() string {
	return fmt.Sprintf(`roster %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// Release is the subset of a GitHub release the checker reads.
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`
}

// Checker looks up the latest published release.
type Checker struct {
	HTTPClient *http.Client
	APIBase    string
	Repo       string
}

// NewChecker creates a checker for the roster repository.
func NewChecker() *Checker {
	return &Checker{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		APIBase:    DefaultAPIBase,
		Repo:       GitHubRepo,
	}
}

// LatestRelease fetches the latest release.
func (c *Checker) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimSuffix(c.APIBase, "/"), c.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "roster-version-checker")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	return &release, nil
}

// CheckForUpdate returns the latest release if it is newer than current,
// or nil if current is up to date.
func (c *Checker) CheckForUpdate(ctx context.Context, current string) (*Release, error) {
	release, err := c.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	if CompareVersions(release.TagName, current) > 0 {
		return release, nil
	}
	return nil, nil
}

// CompareVersions compares two semantic versions.
// It returns 1 if a > b, -1 if a < b and 0 if they are equal.
// A leading "v" and any pre-release suffix are ignored.
func CompareVersions(a, b string) int {
	av, bv := parseVersion(a), parseVersion(b)
	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1
		case av[i] < bv[i]:
			return -1
		}
	}
	return 0
}

// parseVersion splits a version into major, minor and patch numbers.
// Missing or unparsable parts count as zero.
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	var out [3]int
	for i, part := range strings.SplitN(v, ".", 3) {
		part, _, _ = strings.Cut(part, "-")
		n, err := strconv.Atoi(part)
		if err == nil {
			out[i] = n
		}
	}
	return out
}
