package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

const (
	releasesPageURL = "https://github.com/sitekit/sitekit-cli/releases"
	timeout         = 2 * time.Second
	cacheDuration   = 24 * time.Hour
	cacheFileName   = "update.json"

	forceCheckEnvVar = "SITEKIT_FORCE_UPDATE_CHECK"
)

// githubRelease is the part of the GitHub latest-release response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

type cacheState struct {
	LatestVersion string    `json:"latest_version"`
	LastCheck     time.Time `json:"last_check"`
}

// Checker compares the running version with the latest published release.
type Checker struct {
	log         *zerolog.Logger
	releasesURL string
	cachePath   string
	httpClient  *http.Client
	out         io.Writer
	now         func() time.Time
}

// NewChecker caches the latest release under ~/.sitekit. An empty cachePath
// is allowed when the home directory cannot be resolved; the cache is skipped.
func NewChecker(log *zerolog.Logger, releasesURL string) *Checker {
	var cachePath string
	if home, err := os.UserHomeDir(); err == nil {
		cachePath = filepath.Join(home, constants.DefaultStateDirName, cacheFileName)
	} else {
		log.Debug().Msgf("Failed to get user home directory: %v", err)
	}

	return &Checker{
		log:         log,
		releasesURL: releasesURL,
		cachePath:   cachePath,
		httpClient:  &http.Client{Timeout: timeout},
		out:         os.Stderr,
		now:         time.Now,
	}
}

func (c *Checker) loadCache() cacheState {
	if c.cachePath == "" {
		return cacheState{}
	}
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Debug().Msgf("Failed to read cache: %v", err)
		}
		return cacheState{}
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		c.log.Debug().Msgf("Cache file corrupted, ignoring: %v", err)
		return cacheState{}
	}
	return state
}

func (c *Checker) saveCache(state cacheState) error {
	if c.cachePath == "" {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(c.cachePath, data, 0o640)
}

func (c *Checker) fetchLatestVersion() (string, error) {
	c.log.Debug().Msgf("Fetching latest release from %s", c.releasesURL)
	req, err := http.NewRequest(http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", constants.DefaultUserAgent+"-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned non-200 status: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode GitHub API response: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("github API response contained no tag_name")
	}
	return release.TagName, nil
}

// Check prints a notice when a newer release exists. It never fails: every
// problem is logged at debug level and the check is abandoned.
func (c *Checker) Check(currentVersion string) {
	forceCheck := os.Getenv(forceCheckEnvVar) == "1"
	if currentVersion == "development" && !forceCheck {
		c.log.Debug().Msgf("Current version is 'development', skipping update check. (Set %s=1 to override)", forceCheckEnvVar)
		return
	}

	// "version v0.7.3" -> "v0.7.3"
	cleaned := strings.TrimSpace(strings.Replace(currentVersion, "version", "", 1))
	currentSemVer, err := semver.NewVersion(cleaned)
	if err != nil {
		c.log.Debug().Msgf("Failed to parse current version %q: %v", currentVersion, err)
		return
	}

	cache := c.loadCache()
	latest := cache.LatestVersion
	now := c.now()

	if now.Sub(cache.LastCheck) > cacheDuration || forceCheck {
		fetched, err := c.fetchLatestVersion()
		if err != nil {
			c.log.Debug().Msgf("Failed to fetch latest version: %v", err)
		} else {
			latest = fetched
			if err := c.saveCache(cacheState{LatestVersion: fetched, LastCheck: now}); err != nil {
				c.log.Debug().Msgf("Failed to save cache: %v", err)
			}
		}
	}

	if latest == "" {
		return
	}

	latestSemVer, err := semver.NewVersion(latest)
	if err != nil {
		c.log.Debug().Msgf("Failed to parse latest tag %q: %v", latest, err)
		return
	}

	if latestSemVer.GreaterThan(currentSemVer) {
		fmt.Fprintf(c.out,
			"\nUpdate available! You're running %s, but %s is the latest.\n"+
				"Visit %s to upgrade.\n\n",
			currentSemVer.String(),
			latestSemVer.String(),
			releasesPageURL,
		)
		return
	}
	c.log.Debug().Msgf("Current version %s is up-to-date.", currentSemVer.String())
}
