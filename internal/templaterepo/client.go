package templaterepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

var ErrNotAFolder = errors.New("URL does not point to a folder")

// Client lists and downloads repository folders through the GitHub API.
type Client struct {
	logger     *zerolog.Logger
	httpClient *http.Client
	apiURL     string
}

// NewClient uses apiURL as the GitHub API base, e.g. https://api.github.com.
func NewClient(logger *zerolog.Logger, apiURL string) *Client {
	return NewClientWithHTTPClient(logger, apiURL, &http.Client{Timeout: constants.DownloadTimeout})
}

func NewClientWithHTTPClient(logger *zerolog.Logger, apiURL string, httpClient *http.Client) *Client {
	return &Client{
		logger:     logger,
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

// HTTPClient exposes the underlying client so tests can intercept it.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// ListFiles returns the files directly inside the folder repoURL points to,
// in the order the API returns them. Subfolders are skipped.
func (c *Client) ListFiles(ctx context.Context, repoURL string) ([]FileEntry, error) {
	source, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Msgf("Listing files from %s", source)

	contentsURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiURL, source.Owner, source.Repo, escapePath(source.Path), url.QueryEscape(source.Ref))

	ctx, cancel := context.WithTimeout(ctx, constants.GitHubAPITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentsURL, nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)
	req.Header.Set("User-Agent", constants.DefaultUserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %s for %s", resp.Status, source)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		var single contentEntry
		if json.Unmarshal(body, &single) == nil && single.Type != "" {
			return nil, ErrNotAFolder
		}
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	files := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.DownloadURL == "" {
			c.logger.Debug().Str("type", e.Type).Msgf("Skipping %s", e.Path)
			continue
		}
		files = append(files, FileEntry{Name: e.Name, DownloadURL: e.DownloadURL})
	}

	c.logger.Debug().Msgf("Found %d files in %s", len(files), source)
	return files, nil
}

// Download streams the body at downloadURL into dst. Any status other than
// 200 is an error.
func (c *Client) Download(ctx context.Context, downloadURL string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	req.Header.Set("User-Agent", constants.DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %s", resp.Status)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("failed to read download: %w", err)
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	if token := os.Getenv(constants.GitHubTokenEnvVar); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
